package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/constants"
	"github.com/sodo-hospital/admin-api/internal/middleware"
	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/repository"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// NotificationHandlerTestSuite defines the test suite for NotificationHandler
type NotificationHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *NotificationHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Document{},
		&models.Notification{},
	)
	suite.Require().NoError(err)

	userRepo := repository.NewUserRepository(suite.db)
	notifRepo := repository.NewNotificationRepository(suite.db)
	userHandler := NewUserHandler(services.NewUserService(userRepo))
	notifHandler := NewNotificationHandler(services.NewNotificationService(notifRepo))

	gin.SetMode(gin.TestMode)
	store := cookie.NewStore([]byte("test-secret"))

	suite.router = gin.New()
	suite.router.Use(sessions.Sessions(constants.SessionName, store))
	suite.router.POST("/api/auth/identify", userHandler.Identify)

	notifications := suite.router.Group("/api/notifications")
	notifications.Use(middleware.RequireUser())
	notifications.GET("", notifHandler.ListNotifications)
	notifications.PATCH("/:id/read", notifHandler.MarkRead)
}

// TearDownTest runs after each test
func (suite *NotificationHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *NotificationHandlerTestSuite) doJSON(method, url string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *NotificationHandlerTestSuite) login(token string) []*http.Cookie {
	w := suite.doJSON("POST", "/api/auth/identify", gin.H{"token_identifier": token}, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func (suite *NotificationHandlerTestSuite) createTestUser(name, email, token string) *models.User {
	user := &models.User{
		Name:            name,
		Email:           email,
		TokenIdentifier: token,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *NotificationHandlerTestSuite) createTestNotification(userID uint64, title string, read bool) *models.Notification {
	n := &models.Notification{
		UserID:  userID,
		Type:    models.NotificationTypeTask,
		Title:   title,
		Message: "You have been assigned a task",
		IsRead:  read,
	}
	suite.Require().NoError(suite.db.Create(n).Error)
	return n
}

// TestListNotifications_RequiresSession
func (suite *NotificationHandlerTestSuite) TestListNotifications_RequiresSession() {
	w := suite.doJSON("GET", "/api/notifications", nil, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

// TestListNotifications_ScopedToSessionUser never shows other users' items
func (suite *NotificationHandlerTestSuite) TestListNotifications_ScopedToSessionUser() {
	me := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	other := suite.createTestUser("Samuel Kebede", "samuel@bethel.org", "samuel-token")

	suite.createTestNotification(me.ID, "New task assigned", false)
	suite.createTestNotification(me.ID, "Document verified", true)
	suite.createTestNotification(other.ID, "Not yours", false)

	cookies := suite.login("kalkidan-token")

	w := suite.doJSON("GET", "/api/notifications", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Notifications []struct {
			Title  string `json:"title"`
			IsRead bool   `json:"is_read"`
		} `json:"notifications"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Notifications, 2)

	// Unread filter
	w = suite.doJSON("GET", "/api/notifications?unread=true", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Notifications, 1)
	assert.Equal(suite.T(), "New task assigned", resp.Notifications[0].Title)
}

// TestMarkRead flips the flag and is idempotent
func (suite *NotificationHandlerTestSuite) TestMarkRead() {
	me := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	n := suite.createTestNotification(me.ID, "New task assigned", false)

	cookies := suite.login("kalkidan-token")

	w := suite.doJSON("PATCH", "/api/notifications/"+itoa(n.ID)+"/read", nil, cookies)
	suite.Require().Equal(http.StatusOK, w.Code)

	var after models.Notification
	suite.Require().NoError(suite.db.First(&after, n.ID).Error)
	assert.True(suite.T(), after.IsRead)

	// Marking again is a no-op, not an error
	w = suite.doJSON("PATCH", "/api/notifications/"+itoa(n.ID)+"/read", nil, cookies)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestMarkRead_OtherUsersNotification looks like a missing notification, so
// ownership is not leaked
func (suite *NotificationHandlerTestSuite) TestMarkRead_OtherUsersNotification() {
	suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	other := suite.createTestUser("Samuel Kebede", "samuel@bethel.org", "samuel-token")
	n := suite.createTestNotification(other.ID, "Not yours", false)

	cookies := suite.login("kalkidan-token")

	w := suite.doJSON("PATCH", "/api/notifications/"+itoa(n.ID)+"/read", nil, cookies)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var after models.Notification
	suite.Require().NoError(suite.db.First(&after, n.ID).Error)
	assert.False(suite.T(), after.IsRead)
}

func TestNotificationHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationHandlerTestSuite))
}
