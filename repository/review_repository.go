package repository

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ysato/recallnote/apperr"
	"github.com/ysato/recallnote/models"
	"gorm.io/gorm"
)

// NewReview carries the fields of an "add study item" submission.
type NewReview struct {
	Category string `validate:"required"`
	Question string `validate:"required"`
	Answer   string `validate:"required"`
}

// ReviewFields is the user-editable part of a review for partial updates.
// Nil pointers mean "leave unchanged".
type ReviewFields struct {
	Category *string
	Question *string
	Answer   *string
}

// Buckets groups reviews by how long ago their timestamp falls.
type Buckets struct {
	OneDayAgo     []models.Review
	SevenDaysAgo  []models.Review
	ThirtyDaysAgo []models.Review
}

type ReviewRepository struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db, validate: validator.New()}
}

// FindInWindow returns userID's reviews whose Time falls in [start, end].
// No ordering is guaranteed.
func (r *ReviewRepository) FindInWindow(userID uint, start, end time.Time) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.
		Where("user_id = ? AND time >= ? AND time <= ?", userID, start, end).
		Find(&reviews).Error
	return reviews, err
}

// FindByDaysAgo windows on the calendar day daysAgo days before today.
func (r *ReviewRepository) FindByDaysAgo(userID uint, daysAgo int) ([]models.Review, error) {
	return r.FindForCalendarDay(userID, time.Now().AddDate(0, 0, -daysAgo))
}

// FindForCalendarDay windows on the given date, from midnight to the last
// millisecond of that day.
func (r *ReviewRepository) FindForCalendarDay(userID uint, date time.Time) ([]models.Review, error) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return r.FindInWindow(userID, start, end)
}

// Buckets runs the three independent recall-interval queries for the
// dashboard. The queries share no state and no cross-bucket invariant.
func (r *ReviewRepository) Buckets(userID uint) (*Buckets, error) {
	var b Buckets
	var err error
	if b.OneDayAgo, err = r.FindByDaysAgo(userID, 1); err != nil {
		return nil, err
	}
	if b.SevenDaysAgo, err = r.FindByDaysAgo(userID, 7); err != nil {
		return nil, err
	}
	if b.ThirtyDaysAgo, err = r.FindByDaysAgo(userID, 30); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ReviewRepository) FindByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("データが見つかりませんでした")
		}
		return nil, err
	}
	return &review, nil
}

// Create inserts a review owned by userID with Time set to now.
func (r *ReviewRepository) Create(fields NewReview, userID uint) (*models.Review, error) {
	if err := r.validate.Struct(fields); err != nil {
		return nil, apperr.Validation("カテゴリー、問題、答えはすべて入力してください")
	}
	review := models.Review{
		Category: fields.Category,
		Question: fields.Question,
		Answer:   fields.Answer,
		Time:     time.Now(),
		UserID:   userID,
	}
	if err := r.db.Create(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// UpdateTime resets a review's timestamp to now, restarting its interval.
func (r *ReviewRepository) UpdateTime(id uint) error {
	return r.db.Model(&models.Review{}).Where("id = ?", id).Update("time", time.Now()).Error
}

// UpdateFields applies the non-nil fields to the review with the given id.
// Provided fields must be non-empty; an unknown id is a not-found error.
func (r *ReviewRepository) UpdateFields(id uint, fields ReviewFields) (*models.Review, error) {
	for _, f := range []*string{fields.Category, fields.Question, fields.Answer} {
		if f != nil && *f == "" {
			return nil, apperr.Validation("カテゴリー、問題、答えはすべて入力してください")
		}
	}

	review, err := r.FindByID(id)
	if err != nil {
		return nil, err
	}

	if fields.Category != nil {
		review.Category = *fields.Category
	}
	if fields.Question != nil {
		review.Question = *fields.Question
	}
	if fields.Answer != nil {
		review.Answer = *fields.Answer
	}

	if err := r.db.Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// Delete removes the review if present. Deleting an id that does not exist is
// not an error.
func (r *ReviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}
