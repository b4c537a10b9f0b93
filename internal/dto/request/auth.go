package request

type RequestLoginCodeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type VerifyLoginCodeRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
	Code  string `json:"code" validate:"required,numeric,min=4,max=10"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=100"`
}
