package dto

type UpdateProfileRequest struct {
	FirstName string   `json:"first_name"`
	Birthday  string   `json:"birthday"`
	StarSign  string   `json:"star_sign"`
	Location  string   `json:"location"`
	Interests []string `json:"interests"`
}
