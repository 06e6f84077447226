package jobs

import "github.com/iamfelixjp/jobbers-app/apperror"

// checkOwnership gates job mutation and deletion to the owning user. The two
// ids are compared in their canonical string form. There is no admin bypass.
func checkOwnership(callerID, ownerID string) error {
	if callerID == ownerID {
		return nil
	}
	return apperror.NewUnauthorizedError("not authorized to access this resource", nil)
}
