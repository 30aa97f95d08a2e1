package model

// User is an entry in the identity directory. The service never creates
// users implicitly; they are registered through the admin API.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Created     int64  `json:"created"`
}
