package auth

import "github.com/ysato/recallnote/models"

// CanModify is the single ownership rule in the system: a review may only be
// changed or deleted by the user it belongs to.
func CanModify(user *models.User, review *models.Review) bool {
	return user != nil && review != nil && review.UserID == user.ID
}
