package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	"github.com/sodo-hospital/admin-api/internal/logging"
	"github.com/sodo-hospital/admin-api/internal/models"
	"github.com/sodo-hospital/admin-api/internal/repository"
)

// SeedService populates demo data: a fixed staff roster plus sample license,
// work permit, residence ID and support letter workflows with their document
// checklists.
//
// Users are deduplicated by email on re-runs; tasks and documents are NOT,
// so running the seed twice doubles them. Seeding is also not atomic: a
// failure partway leaves whatever was already inserted.
type SeedService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	docRepo  repository.DocumentRepository
}

// NewSeedService creates a new SeedService
func NewSeedService(userRepo repository.UserRepository, taskRepo repository.TaskRepository, docRepo repository.DocumentRepository) *SeedService {
	return &SeedService{
		userRepo: userRepo,
		taskRepo: taskRepo,
		docRepo:  docRepo,
	}
}

// SeedResult reports how many records a seed run inserted.
type SeedResult struct {
	Users     int `json:"users"`
	Tasks     int `json:"tasks"`
	Documents int `json:"documents"`
}

type seedDoc struct {
	name    string
	docType string
}

var seedUsers = []models.User{
	{Name: "Yonatan Afewerk", Email: "yonatan@soddo.org", TokenIdentifier: "yonatan-token", AvatarURL: "/placeholder-user.jpg"},
	{Name: "Bethel Admin", Email: "admin@bethel.org", TokenIdentifier: "bethel-token", AvatarURL: "/placeholder-user.jpg"},
	{Name: "Kalkidan Tadesse", Email: "kalkidan@soddo.org", TokenIdentifier: "kalkidan-token", AvatarURL: "/placeholder-user.jpg"},
	{Name: "Samuel Kebede", Email: "samuel@bethel.org", TokenIdentifier: "samuel-token", AvatarURL: "/placeholder-user.jpg"},
	{Name: "Daniel Tesfaye", Email: "daniel@immigration.gov.et", TokenIdentifier: "daniel-token", AvatarURL: "/placeholder-user.jpg"},
	{Name: "Feven Mulugeta", Email: "feven@mol.gov.et", TokenIdentifier: "feven-token", AvatarURL: "/placeholder-user.jpg"},
}

// Seed inserts the demo dataset and returns insert counts.
func (s *SeedService) Seed() (*SeedResult, error) {
	result := &SeedResult{}

	userIDs := make(map[string]uint64, len(seedUsers))
	for i := range seedUsers {
		u := seedUsers[i]

		existing, err := s.userRepo.FindByEmail(u.Email)
		if err == nil {
			userIDs[u.Name] = existing.ID
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check seed user: %w", err)
		}

		if err := s.userRepo.Create(&u); err != nil {
			return nil, fmt.Errorf("failed to create seed user: %w", err)
		}
		userIDs[u.Name] = u.ID
		result.Users++
	}

	adminID := userIDs["Yonatan Afewerk"]

	if err := s.seedLicenses(userIDs, adminID, result); err != nil {
		return nil, err
	}
	if err := s.seedWorkPermits(userIDs, adminID, result); err != nil {
		return nil, err
	}
	if err := s.seedResidenceIDs(userIDs, adminID, result); err != nil {
		return nil, err
	}
	if err := s.seedSupportLetters(userIDs, adminID, result); err != nil {
		return nil, err
	}

	logging.Logger.WithFields(map[string]interface{}{
		"users":     result.Users,
		"tasks":     result.Tasks,
		"documents": result.Documents,
	}).Info("Seed run completed")

	return result, nil
}

func (s *SeedService) seedLicenses(userIDs map[string]uint64, adminID uint64, result *SeedResult) error {
	licenseTypes := []string{"Medical Professional", "Medical Facility", "Specialized Practice", "Temporary Practice", "Medical Research"}
	locations := []string{"Addis Ababa", "Hawassa", "Bahir Dar", "Mekelle", "Dire Dawa"}
	applicants := []string{"Dr. Abebe Fekadu", "Dr. Tigist Hailu", "Dr. Mekonnen Tadesse", "Nurse Rahel Desta", "Dr. John Smith"}
	orgs := []string{"Soddo Christian Hospital", "St. Paul's Hospital", "Black Lion Hospital", "Tikur Anbessa Hospital", "Hawassa University Hospital"}

	docs := []seedDoc{
		{"Support letter", "support-letter"},
		{"Authenticated academic document", "academic-document"},
		{"Health Certificate", "health-certificate"},
		{"HERQA equivalence letter", "equivalence-letter"},
		{"Payment proof", "payment-proof"},
	}

	for i := 0; i < 5; i++ {
		created := time.Now().AddDate(0, 0, -(i*3 + rand.Intn(5)))
		due := created.AddDate(0, 0, 14+rand.Intn(30))

		status := models.TaskStatusCompleted
		steps := []string{"submission", "verification", "approval"}
		switch i {
		case 0:
			status, steps = models.TaskStatusPending, []string{"submission"}
		case 1, 2:
			status, steps = models.TaskStatusInProgress, []string{"submission", "verification"}
		}

		priority := models.TaskPriorityMedium
		if i == 0 || i == 2 {
			priority = models.TaskPriorityHigh
		}

		assignee := []string{"Kalkidan Tadesse", "Samuel Kebede", "Bethel Admin", "Kalkidan Tadesse", "Kalkidan Tadesse"}[i]

		taskID, err := s.insertTask(models.Task{
			Title:          fmt.Sprintf("License Application - %s", licenseTypes[i]),
			Description:    fmt.Sprintf("Process license application for %s from %s", applicants[i], orgs[i]),
			TaskType:       "license-application",
			Status:         status,
			Priority:       priority,
			DueDate:        due,
			Location:       locations[i],
			CompletedSteps: models.StringSlice(steps),
			TotalSteps:     3,
			CreatedAt:      created,
			AssigneeID:     userIDs[assignee],
			CreatorID:      adminID,
		}, result)
		if err != nil {
			return err
		}

		if err := s.insertDocs(taskID, applicants[i], status, created, userIDs[assignee], docs, result); err != nil {
			return err
		}
	}

	return nil
}

func (s *SeedService) seedWorkPermits(userIDs map[string]uint64, adminID uint64, result *SeedResult) error {
	applicants := []string{"Dr. Richard Miller", "Dr. Sarah Johnson", "Michael Williams", "Elizabeth Taylor", "Robert Davis"}
	places := []string{"SCH Office", "Ministry of Labor", "Immigration Office", "Bethel Office", "Embassy Liaison Office"}

	docs := []seedDoc{
		{"Passport", "passport"},
		{"Certificate of Competence", "coc"},
		{"Business License", "business-license"},
		{"Support Letter", "support-letter"},
		{"Visa Copy", "visa-copy"},
	}

	for i := 0; i < 5; i++ {
		created := time.Now().AddDate(0, 0, -(i*5 + rand.Intn(10)))
		due := created.AddDate(0, 0, 20+rand.Intn(30))

		status := models.TaskStatusCompleted
		steps := []string{"submission", "processing", "approval", "collection"}
		switch {
		case i <= 1:
			status, steps = models.TaskStatusPending, []string{"submission"}
		case i <= 3:
			status, steps = models.TaskStatusInProgress, []string{"submission", "processing"}
		}

		priority := models.TaskPriorityLow
		switch i {
		case 0, 1:
			priority = models.TaskPriorityHigh
		case 2:
			priority = models.TaskPriorityMedium
		}

		assignee := "Bethel Admin"
		if i == 0 || i == 4 {
			assignee = "Feven Mulugeta"
		} else if i == 1 {
			assignee = "Samuel Kebede"
		}

		taskID, err := s.insertTask(models.Task{
			Title:          fmt.Sprintf("Work Permit - %s", applicants[i]),
			Description:    fmt.Sprintf("Process work permit application for %s", applicants[i]),
			TaskType:       "work-permit",
			Status:         status,
			Priority:       priority,
			DueDate:        due,
			Location:       places[i],
			CompletedSteps: models.StringSlice(steps),
			TotalSteps:     4,
			CreatedAt:      created,
			AssigneeID:     userIDs[assignee],
			CreatorID:      adminID,
		}, result)
		if err != nil {
			return err
		}

		if err := s.insertDocs(taskID, applicants[i], status, created, userIDs[assignee], docs, result); err != nil {
			return err
		}
	}

	return nil
}

func (s *SeedService) seedResidenceIDs(userIDs map[string]uint64, adminID uint64, result *SeedResult) error {
	applicants := []string{"Dr. Mark Wilson", "Dr. Emily Brown", "James Anderson", "Jennifer Martinez", "Thomas Robinson"}

	docs := []seedDoc{
		{"Passport", "passport"},
		{"Work Permit", "work-permit"},
		{"Support Letter", "support-letter"},
		{"Visa", "visa"},
		{"Photos", "photos"},
	}

	for i := 0; i < 5; i++ {
		created := time.Now().AddDate(0, 0, -(i*4 + rand.Intn(8)))
		due := created.AddDate(0, 0, 25+rand.Intn(15))

		status := models.TaskStatusCompleted
		steps := []string{"submission", "payment", "collection"}
		switch {
		case i == 0:
			status, steps = models.TaskStatusPending, []string{}
		case i <= 2:
			status, steps = models.TaskStatusInProgress, []string{"submission"}
		}

		priority := models.TaskPriorityMedium
		if i == 1 || i == 2 {
			priority = models.TaskPriorityHigh
		}

		assignee := "Bethel Admin"
		if i <= 1 {
			assignee = "Daniel Tesfaye"
		} else if i == 2 {
			assignee = "Samuel Kebede"
		}

		taskID, err := s.insertTask(models.Task{
			Title:          fmt.Sprintf("Residence ID - %s", applicants[i]),
			Description:    fmt.Sprintf("Process residence ID for %s", applicants[i]),
			TaskType:       "residence-id",
			Status:         status,
			Priority:       priority,
			DueDate:        due,
			Location:       "Immigration Bethel",
			CompletedSteps: models.StringSlice(steps),
			TotalSteps:     3,
			CreatedAt:      created,
			AssigneeID:     userIDs[assignee],
			CreatorID:      adminID,
		}, result)
		if err != nil {
			return err
		}

		if err := s.insertDocs(taskID, applicants[i], status, created, userIDs[assignee], docs, result); err != nil {
			return err
		}
	}

	return nil
}

func (s *SeedService) seedSupportLetters(userIDs map[string]uint64, adminID uint64, result *SeedResult) error {
	recipients := []string{"SNNP Region", "Addis Ababa Health Bureau", "Ministry of Health", "Immigration Office", "Ministry of Labor"}

	docs := []seedDoc{
		{"Request form", "request-form"},
		{"Employment contract", "employment-contract"},
		{"Draft letter", "draft-letter"},
	}

	for i := 0; i < 5; i++ {
		created := time.Now().AddDate(0, 0, -(i*2 + rand.Intn(4)))
		due := created.AddDate(0, 0, 7+rand.Intn(10))

		status := models.TaskStatusCompleted
		steps := []string{"draft", "signature", "delivery"}
		switch {
		case i <= 1:
			status, steps = models.TaskStatusPending, []string{"draft"}
		case i == 2:
			status, steps = models.TaskStatusUnderReview, []string{"draft", "signature"}
		}

		priority := models.TaskPriorityLow
		if i == 0 {
			priority = models.TaskPriorityMedium
		}

		assignee := "Kalkidan Tadesse"
		if i%2 == 1 {
			assignee = "Samuel Kebede"
		}

		taskID, err := s.insertTask(models.Task{
			Title:          fmt.Sprintf("Support Letter - %s", recipients[i]),
			Description:    fmt.Sprintf("Prepare support letter addressed to %s", recipients[i]),
			TaskType:       "support-letter",
			Status:         status,
			Priority:       priority,
			DueDate:        due,
			Location:       "SCH Office",
			CompletedSteps: models.StringSlice(steps),
			TotalSteps:     3,
			CreatedAt:      created,
			AssigneeID:     userIDs[assignee],
			CreatorID:      adminID,
		}, result)
		if err != nil {
			return err
		}

		if err := s.insertDocs(taskID, recipients[i], status, created, userIDs[assignee], docs, result); err != nil {
			return err
		}
	}

	return nil
}

func (s *SeedService) insertTask(task models.Task, result *SeedResult) (uint64, error) {
	if err := s.taskRepo.Create(&task); err != nil {
		return 0, fmt.Errorf("failed to create seed task: %w", err)
	}
	result.Tasks++
	return task.ID, nil
}

// insertDocs writes the document checklist for one task. Document status
// tracks the task: completed tasks get verified documents, in-progress tasks
// a mix of uploaded and required, pending tasks only required ones.
func (s *SeedService) insertDocs(taskID uint64, subject string, taskStatus models.TaskStatus, created time.Time, uploaderID uint64, docs []seedDoc, result *SeedResult) error {
	for i, d := range docs {
		status := models.DocumentStatusRequired
		switch {
		case taskStatus == models.TaskStatusCompleted:
			status = models.DocumentStatusVerified
		case taskStatus == models.TaskStatusInProgress && i < 3:
			status = models.DocumentStatusUploaded
		}

		doc := models.Document{
			Name:   fmt.Sprintf("%s for %s", d.name, subject),
			Type:   d.docType,
			Status: status,
			TaskID: taskID,
		}

		if status != models.DocumentStatusRequired {
			uploadedAt := created.AddDate(0, 0, 1+rand.Intn(3))
			doc.FileURL = fmt.Sprintf("/documents/%s-sample.pdf", d.docType)
			doc.UploadedAt = &uploadedAt
			uploadedBy := uploaderID
			doc.UploadedByID = &uploadedBy
		}

		if err := s.docRepo.Create(&doc); err != nil {
			return fmt.Errorf("failed to create seed document: %w", err)
		}
		result.Documents++
	}

	return nil
}
