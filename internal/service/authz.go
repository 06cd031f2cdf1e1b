package service

import "github.com/coursify/marketplace-api/internal/domain"

// CanMutate reports whether the acting user owns the resource. The same check
// guards course mutations and, through the parent course, lesson mutations.
func CanMutate(actor *domain.User, ownerID uint) bool {
	return actor != nil && actor.ID == ownerID
}

// AuthorizeMutation turns an ownership violation into the error the callers
// abort on. The operation must not have written anything by the time this is
// consulted.
func AuthorizeMutation(actor *domain.User, ownerID uint) error {
	if !CanMutate(actor, ownerID) {
		return domain.ErrNotOwner
	}
	return nil
}
