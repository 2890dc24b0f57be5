package console

// draftRequest частичное изменение черновика: незаданные поля не меняются.
type draftRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=255"`
	Email *string `json:"email" validate:"omitempty,max=320"`
	Role  *string `json:"role" validate:"omitempty,oneof=ADMIN EDITOR VIEWER"`
}
