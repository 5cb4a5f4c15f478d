package utils

import (
	"context"

	"foodgram/globals"
)

func GetUserIDFromContext(ctx context.Context) string {
	requestingUserID, ok := ctx.Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetIsStaffFromContext(ctx context.Context) bool {
	isStaff, ok := ctx.Value(globals.IsStaffKey).(bool)
	return ok && isStaff
}
