package models

type RegisterSuccessResponse struct {
	Message string `json:"message" example:"Account created successfully"`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
}

type LoginSuccessResponse struct {
	Message      string `json:"message" example:"Login successful"`
	Token        string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	UserID       string `json:"user_id" example:"507f1f77bcf86cd799439011"`
	Role         string `json:"role" example:"employee"`
	IsFirstLogin bool   `json:"is_first_login" example:"true"`
}

type ChangePasswordSuccessResponse struct {
	Message string `json:"message" example:"Password changed successfully."`
}

type GetUserSuccessResponse struct {
	Message string `json:"message" example:"User found"`
	User    User   `json:"user"`
}

type GetAllUsersSuccessResponse struct {
	Message string `json:"message" example:"Users fetched successfully"`
	Users   []User `json:"users"`
	Total   int    `json:"total" example:"10"`
}

type UpdateUserSuccessResponse struct {
	Message string `json:"message" example:"User updated successfully"`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
}

type DeleteUserSuccessResponse struct {
	Message string `json:"message" example:"User deleted successfully"`
	UserID  string `json:"user_id" example:"507f1f77bcf86cd799439011"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid request body"`
	Details string `json:"details,omitempty" example:"validation failed"`
}

type ValidationErrorResponse struct {
	Error  string `json:"error" example:"Validation failed"`
	Errors string `json:"errors" example:"email: invalid email format"`
}

type UnauthorizedErrorResponse struct {
	Error string `json:"error" example:"Invalid or missing token"`
}

type ForbiddenErrorResponse struct {
	Error string `json:"error" example:"Access denied. Admin privileges are required"`
}

type NotFoundErrorResponse struct {
	Error string `json:"error" example:"User not found"`
}

type LogoutSuccessResponse struct {
	Message string `json:"message" example:"Logout successful. Remove the token on the client side."`
}
