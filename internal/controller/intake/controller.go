// Package intake implements the public job-application submission pipeline.
package intake

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"PeopleDesk-backend/internal/database"
	"PeopleDesk-backend/internal/model"
	"PeopleDesk-backend/internal/notifier"
	"PeopleDesk-backend/internal/storage"
	"PeopleDesk-backend/internal/utilities"
)

const (
	photoObjectPrefix = "applications/photos"
	cvObjectPrefix    = "applications/cvs"
)

// IntakeController orchestrates one form submission end to end: file uploads,
// the transactional insert, and the post-commit notifications.
type IntakeController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
	CRM     *notifier.CRMNotifier
	Chat    *notifier.TelegramNotifier

	logger zerolog.Logger
}

// NewIntakeController creates a new instance of IntakeController.
func NewIntakeController(db *database.DBinstanceStruct, store storage.Client, crm *notifier.CRMNotifier, chat *notifier.TelegramNotifier) *IntakeController {
	return &IntakeController{
		DB:      db,
		Storage: store,
		CRM:     crm,
		Chat:    chat,
		logger:  zerolog.New(os.Stdout).With().Timestamp().Str("component", "intake").Logger(),
	}
}

// SubmitHandler handles one public application submission.
//
// The two file fields are optional: an absent file leaves the reference empty
// and is accepted silently. Uploads happen inside the transaction scope, so a
// storage failure rolls the whole submission back; already-uploaded objects
// are not cleaned up. Notifications run only after a successful commit and
// can never change the outcome the applicant sees.
// @Summary Submit a job application
// @Description Public endpoint behind a rate limiter. Multipart form with applicant fields plus optional files 'photo' and 'cv_file'.
// @Tags Intake
// @Accept mpfd
// @Produce json
// @Param name formData string true "Applicant full name"
// @Param job_category_id formData int false "Category the application is filed under"
// @Param photo formData file false "Applicant photo"
// @Param cv_file formData file false "Applicant CV"
// @Success 201 {object} model.Application "Successfully submitted application"
// @Failure 413 {object} utilities.ErrorResponse "Attached file too large"
// @Failure 500 {object} utilities.ErrorResponse "Upload or database error"
// @Router /apply [post]
func (ic *IntakeController) SubmitHandler(c *gin.Context) {

	application := model.Application{}
	if err := c.ShouldBind(&application.ApplicantInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid form body: %s", err.Error()),
		})
		return
	}

	// Date of birth arrives as three separate inputs and is stored as their
	// dash-joined concatenation, no calendar validity check.
	application.DOB = fmt.Sprintf("%s-%s-%s",
		c.PostForm("dob_year"), c.PostForm("dob_month"), c.PostForm("dob_day"))

	var categoryID uint
	_, _ = fmt.Sscanf(c.PostForm("job_category_id"), "%d", &categoryID)
	application.JobCategoryID = categoryID

	application.Status = model.ApplicationStatusPending
	application.AppliedAt = time.Now()

	tx := ic.DB.Begin()
	if tx.Error != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to open transaction: %s", tx.Error.Error()),
		})
		return
	}

	photoRef, err := ic.storeAttachment(c, "photo", photoObjectPrefix, application.Name)
	if err != nil {
		tx.Rollback()
		ic.respondUploadError(c, "photo", err)
		return
	}
	cvRef, err := ic.storeAttachment(c, "cv_file", cvObjectPrefix, application.Name)
	if err != nil {
		tx.Rollback()
		ic.respondUploadError(c, "cv_file", err)
		return
	}
	application.Photo = photoRef
	application.CVFile = cvRef

	if err := tx.Create(&application).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save application: %s", err.Error()),
		})
		return
	}

	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save application: %s", err.Error()),
		})
		return
	}

	ic.notify(application)

	c.JSON(http.StatusCreated, application)
}

// storeAttachment uploads one optional file field and returns the object
// reference. A missing file is not an error, the reference just stays empty.
func (ic *IntakeController) storeAttachment(c *gin.Context, field, prefix, applicantName string) (string, error) {
	rawFile, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	f, err := rawFile.Open()
	if err != nil {
		return "", fmt.Errorf("cannot open file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			ic.logger.Warn().Err(err).Str("field", field).Msg("failed to close uploaded file")
		}
	}()

	objectName := storage.ObjectName(prefix, applicantName, rawFile.Filename)
	if err := ic.Storage.UploadFile(objectName, f); err != nil {
		return "", err
	}
	return objectName, nil
}

func (ic *IntakeController) respondUploadError(c *gin.Context, field string, err error) {
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		c.JSON(http.StatusRequestEntityTooLarge, utilities.ErrorResponse{
			Error: err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
		Error: fmt.Sprintf("Failed to store %s: %s", field, err.Error()),
	})
}

// notify resolves the category display name and dispatches both notifiers.
// A missing or invalid category id yields an empty name, not an error.
func (ic *IntakeController) notify(application model.Application) {
	var categoryName string
	var category model.JobCategory
	if err := ic.DB.First(&category, application.JobCategoryID).Error; err == nil {
		categoryName = category.CategoryName
	}

	lead := notifier.Lead{
		Name:           application.Name,
		CountryCode:    application.CountryCode,
		Mobile:         application.Mobile,
		Email:          application.Email,
		Category:       categoryName,
		Qualification:  application.Qualification,
		HasExperience:  application.HasExperience,
		ExpectedSalary: application.ExpectedSalary,
		Location:       fmt.Sprintf("%s, %s", application.District, application.State),
		SubmittedAt:    application.AppliedAt,
	}

	crmResult := ic.CRM.Notify(lead)
	ic.logger.Info().Uint("application_id", application.ID).Str("crm_result", crmResult).Msg("CRM notification dispatched")

	ic.Chat.Notify(lead)
}
