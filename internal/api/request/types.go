package request

// LoginCallbackRequest is the request body for resolving an external login
type LoginCallbackRequest struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
}

// UpdateUsernameRequest is the request body for renaming a player
type UpdateUsernameRequest struct {
	Username string `json:"username"`
}

// UpdateAvatarRequest is the request body for replacing an avatar
type UpdateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// UpdateStatusRequest is the request body for setting presence
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// VerifyCodeRequest is the request body for checking a TOTP code
type VerifyCodeRequest struct {
	Code string `json:"code"`
}

// CreateRelationRequest is the request body for creating a relation
type CreateRelationRequest struct {
	TargetID int64  `json:"target_id"`
	Kind     string `json:"kind"`
}
