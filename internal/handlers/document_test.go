package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/repository"
	"github.com/sodo-hospital/admin-api/internal/services"
)

// DocumentHandlerTestSuite defines the test suite for DocumentHandler
type DocumentHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *DocumentHandlerTestSuite) SetupTest() {
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

	docRepo := repository.NewDocumentRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	handler := NewDocumentHandler(services.NewDocumentService(docRepo, taskRepo, userRepo))

	RegisterValidations()
	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	suite.router.GET("/api/documents", handler.ListDocuments)
	suite.router.POST("/api/documents", handler.CreateDocument)
	suite.router.PATCH("/api/documents/:id", handler.UpdateDocument)
}

// TearDownTest runs after each test
func (suite *DocumentHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *DocumentHandlerTestSuite) doJSON(method, url string, body any) *httptest.ResponseRecorder {
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

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// Helper functions to create test data

func (suite *DocumentHandlerTestSuite) createTestUser(name, email, token string) *models.User {
	user := &models.User{
		Name:            name,
		Email:           email,
		TokenIdentifier: token,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *DocumentHandlerTestSuite) createTestTask(title string, creatorID uint64) *models.Task {
	task := &models.Task{
		Title:      title,
		TaskType:   "license-application",
		Status:     models.TaskStatusPending,
		Priority:   models.TaskPriorityMedium,
		DueDate:    time.Now().Add(14 * 24 * time.Hour),
		TotalSteps: 3,
		AssigneeID: creatorID,
		CreatorID:  creatorID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *DocumentHandlerTestSuite) createDocument(payload gin.H) uint64 {
	w := suite.doJSON("POST", "/api/documents", payload)
	suite.Require().Equal(http.StatusCreated, w.Code)

	var created struct {
		ID uint64 `json:"id"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	suite.Require().NotZero(created.ID)
	return created.ID
}

// TestCreateDocument_WithFileURLStampsUploadedAt pins the derivation: a
// non-empty file_url at creation time sets uploaded_at
func (suite *DocumentHandlerTestSuite) TestCreateDocument_WithFileURLStampsUploadedAt() {
	u := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	task := suite.createTestTask("License Application", u.ID)

	docID := suite.createDocument(gin.H{
		"name":           "Medical Degree Certificate",
		"type":           "degree-certificate",
		"status":         "uploaded",
		"file_url":       "/documents/degree-certificate-sample.pdf",
		"task_id":        task.ID,
		"uploaded_by_id": u.ID,
	})

	var doc models.Document
	suite.Require().NoError(suite.db.First(&doc, docID).Error)
	suite.Require().NotNil(doc.UploadedAt)
	assert.WithinDuration(suite.T(), time.Now(), *doc.UploadedAt, 5*time.Second)
}

// TestCreateDocument_WithoutFileURLNoUploadedAt leaves uploaded_at unset
func (suite *DocumentHandlerTestSuite) TestCreateDocument_WithoutFileURLNoUploadedAt() {
	u := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	task := suite.createTestTask("License Application", u.ID)

	docID := suite.createDocument(gin.H{
		"name":    "Passport Copy",
		"type":    "passport",
		"status":  "required",
		"task_id": task.ID,
	})

	var doc models.Document
	suite.Require().NoError(suite.db.First(&doc, docID).Error)
	assert.Nil(suite.T(), doc.UploadedAt)
}

// TestCreateDocument_UnknownTask rejects documents pointing at nothing
func (suite *DocumentHandlerTestSuite) TestCreateDocument_UnknownTask() {
	w := suite.doJSON("POST", "/api/documents", gin.H{
		"name":    "Passport Copy",
		"type":    "passport",
		"status":  "required",
		"task_id": 9999,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestCreateDocument_UnrecognizedStatus rejects statuses outside the closed set
func (suite *DocumentHandlerTestSuite) TestCreateDocument_UnrecognizedStatus() {
	u := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	task := suite.createTestTask("License Application", u.ID)

	w := suite.doJSON("POST", "/api/documents", gin.H{
		"name":    "Passport Copy",
		"type":    "passport",
		"status":  "pending-review",
		"task_id": task.ID,
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdateDocument_FileURLRestampsUploadedAt: sending file_url overwrites
// any earlier uploaded_at with the current time
func (suite *DocumentHandlerTestSuite) TestUpdateDocument_FileURLRestampsUploadedAt() {
	u := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	task := suite.createTestTask("License Application", u.ID)

	past := time.Now().Add(-48 * time.Hour)
	doc := &models.Document{
		Name:       "Medical Degree Certificate",
		Type:       "degree-certificate",
		Status:     models.DocumentStatusUploaded,
		FileURL:    "/documents/old.pdf",
		UploadedAt: &past,
		TaskID:     task.ID,
	}
	suite.Require().NoError(suite.db.Create(doc).Error)

	w := suite.doJSON("PATCH", "/api/documents/"+itoa(doc.ID), gin.H{
		"file_url": "/documents/new.pdf",
		"status":   "verified",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var after models.Document
	suite.Require().NoError(suite.db.First(&after, doc.ID).Error)
	assert.Equal(suite.T(), "/documents/new.pdf", after.FileURL)
	assert.Equal(suite.T(), models.DocumentStatusVerified, after.Status)
	suite.Require().NotNil(after.UploadedAt)
	assert.WithinDuration(suite.T(), time.Now(), *after.UploadedAt, 5*time.Second)
}

// TestUpdateDocument_StatusOnlyKeepsUploadedAt: a status change alone never
// touches uploaded_at
func (suite *DocumentHandlerTestSuite) TestUpdateDocument_StatusOnlyKeepsUploadedAt() {
	u := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	task := suite.createTestTask("License Application", u.ID)

	past := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	doc := &models.Document{
		Name:       "Medical Degree Certificate",
		Type:       "degree-certificate",
		Status:     models.DocumentStatusUploaded,
		FileURL:    "/documents/old.pdf",
		UploadedAt: &past,
		TaskID:     task.ID,
	}
	suite.Require().NoError(suite.db.Create(doc).Error)

	w := suite.doJSON("PATCH", "/api/documents/"+itoa(doc.ID), gin.H{
		"status": "verified",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var after models.Document
	suite.Require().NoError(suite.db.First(&after, doc.ID).Error)
	assert.Equal(suite.T(), models.DocumentStatusVerified, after.Status)
	suite.Require().NotNil(after.UploadedAt)
	assert.WithinDuration(suite.T(), past, *after.UploadedAt, time.Second)
}

// TestUpdateDocument_NotFound fails loudly when the id is unknown
func (suite *DocumentHandlerTestSuite) TestUpdateDocument_NotFound() {
	w := suite.doJSON("PATCH", "/api/documents/424242", gin.H{"status": "verified"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestListDocuments_ScopedToTask returns only the requested task's documents,
// with the uploader hydrated
func (suite *DocumentHandlerTestSuite) TestListDocuments_ScopedToTask() {
	u := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	t1 := suite.createTestTask("License Application", u.ID)
	t2 := suite.createTestTask("Work Permit", u.ID)

	suite.createDocument(gin.H{
		"name":           "Passport Copy",
		"type":           "passport",
		"status":         "uploaded",
		"file_url":       "/documents/passport-sample.pdf",
		"task_id":        t1.ID,
		"uploaded_by_id": u.ID,
	})
	suite.createDocument(gin.H{
		"name":    "Visa",
		"type":    "visa",
		"status":  "required",
		"task_id": t2.ID,
	})

	w := suite.doJSON("GET", "/api/documents?task_id="+itoa(t1.ID), nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Documents []struct {
			Name       string `json:"name"`
			TaskID     uint64 `json:"task_id"`
			UploadedBy *struct {
				Name string `json:"name"`
			} `json:"uploaded_by"`
		} `json:"documents"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))

	suite.Require().Len(resp.Documents, 1)
	assert.Equal(suite.T(), "Passport Copy", resp.Documents[0].Name)
	assert.Equal(suite.T(), t1.ID, resp.Documents[0].TaskID)
	suite.Require().NotNil(resp.Documents[0].UploadedBy)
	assert.Equal(suite.T(), "Kalkidan Tadesse", resp.Documents[0].UploadedBy.Name)
}

// TestListDocuments_All returns everything when no task_id is given
func (suite *DocumentHandlerTestSuite) TestListDocuments_All() {
	u := suite.createTestUser("Kalkidan Tadesse", "kalkidan@soddo.org", "kalkidan-token")
	t1 := suite.createTestTask("License Application", u.ID)
	t2 := suite.createTestTask("Work Permit", u.ID)

	suite.createDocument(gin.H{
		"name": "Passport Copy", "type": "passport", "status": "required", "task_id": t1.ID,
	})
	suite.createDocument(gin.H{
		"name": "Visa", "type": "visa", "status": "required", "task_id": t2.ID,
	})

	w := suite.doJSON("GET", "/api/documents", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp struct {
		Documents []json.RawMessage `json:"documents"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(suite.T(), resp.Documents, 2)
}

func TestDocumentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentHandlerTestSuite))
}
