package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"ngcommerce/internal/models"
	"ngcommerce/internal/storage"
	"ngcommerce/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ReviewInput is a review submission payload. Rating zero fails validation,
// so an empty payload is rejected as a whole.
type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required"`
}

// ReviewService holds the persisted, append-only review collection. All
// products share one collection under the reviews key; listings filter it
// per product.
type ReviewService struct {
	store    *storage.Adapter
	mqClient *rabbitmq.Client
	validate *validator.Validate

	mu      sync.RWMutex
	reviews []models.Review // newest first
}

// NewReviewService creates a ReviewService, restoring any persisted reviews.
// A corrupt persisted collection is discarded by the adapter. mqClient may
// be nil, in which case event publication is skipped.
func NewReviewService(store *storage.Adapter, mqClient *rabbitmq.Client) *ReviewService {
	s := &ReviewService{
		store:    store,
		mqClient: mqClient,
		validate: validator.New(),
	}
	store.Load(storage.ReviewsKey, &s.reviews)
	return s
}

// List returns the reviews for productID, newest first.
func (s *ReviewService) List(productID string) []models.Review {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Review, 0)
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Summary aggregates rating statistics for productID.
func (s *ReviewService) Summary(productID string) models.ReviewSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum, count int
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}

	summary := models.ReviewSummary{TotalCount: count}
	if count > 0 {
		summary.AverageRating = float64(sum) / float64(count)
	}
	return summary
}

// Submit validates and stores a new review, returning it so the caller can
// display it without a re-fetch. The author's display name is denormalized
// at submission time; a later profile change never rewrites past reviews.
// It fails with ErrAuthenticationRequired when token or user is absent and
// with ErrValidation when the rating is outside 1-5 or the comment is empty.
func (s *ReviewService) Submit(productID string, input ReviewInput, token string, user *models.User) (*models.Review, error) {
	if token == "" || user == nil {
		return nil, ErrAuthenticationRequired
	}
	if err := s.validate.Struct(input); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	review := models.Review{
		ID:        uuid.New().String(),
		ProductID: productID,
		UserID:    user.ID,
		UserName:  user.Name,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.reviews = append([]models.Review{review}, s.reviews...)
	s.store.Save(storage.ReviewsKey, s.reviews)
	s.mu.Unlock()

	if s.mqClient != nil {
		err := s.mqClient.Publish("review.submitted", map[string]interface{}{
			"reviewID":  review.ID,
			"productID": review.ProductID,
			"rating":    review.Rating,
		})
		if err != nil {
			log.Printf("Warning: failed to publish review.submitted event: %v", err)
		}
	}

	return &review, nil
}
