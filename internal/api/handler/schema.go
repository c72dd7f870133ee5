package handler

import "github.com/securepass/securepass/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type signupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signupResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

// --- Vault ---

type createEntryRequest struct {
	Label    string `json:"label"    validate:"required,max=255"`
	Password string `json:"password" validate:"required"`
}

// updateEntryRequest leaves a field untouched when it is absent from the body.
type updateEntryRequest struct {
	Label    *string `json:"label"    validate:"omitempty,max=255"`
	Password *string `json:"password"`
}

type listEntriesQuery struct {
	Page int `query:"page"`
	Size int `query:"size" validate:"max=100"`
}

type entryLinks struct {
	Self string `json:"self"`
}

type entryResponse struct {
	ID       string     `json:"id"`
	Label    string     `json:"label"`
	Password string     `json:"password"`
	Links    entryLinks `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalPages int   `json:"total_pages"`
}

type listEntriesResponse struct {
	Data       []entryResponse    `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}

// --- Utils ---

type checkerRequest struct {
	Password string `json:"password" validate:"required"`
}

type checkerResponse struct {
	Strength    string   `json:"strength"`
	Suggestions []string `json:"suggestions"`
}

type generatorQuery struct {
	Length    int  `query:"length"    validate:"max=1024"`
	Uppercase bool `query:"uppercase"`
	Lowercase bool `query:"lowercase"`
	Numbers   bool `query:"numbers"`
	Special   bool `query:"special"`
}

type generatorResponse struct {
	Password   string                `json:"password"`
	Properties domain.GenerationSpec `json:"properties"`
}
