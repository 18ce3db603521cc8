package service

// CanMutate decides whether actingUserID may mutate a resource owned by
// resourceOwnerID. The entire policy is creator-equals-actor: there is no
// role hierarchy and no admin override.
func CanMutate(resourceOwnerID, actingUserID string) bool {
	return resourceOwnerID == actingUserID
}
