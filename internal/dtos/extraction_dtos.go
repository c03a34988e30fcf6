package dtos

type ExtractRequest struct {
	DocumentID string `json:"document_id" validate:"required"`

	// CurrentAddress lets the server flag a mismatch between the document's
	// address and the one already entered in the wizard. Optional.
	CurrentAddress string `json:"current_address,omitempty"`
}

/*
ExtractedUnit is one unit as produced by the model and normalized server-side.
Every field is always present; missing values default to "" or 0.
*/
type ExtractedUnit struct {
	Number           string  `json:"number"`
	Type             string  `json:"type"`
	Floor            string  `json:"floor"`
	Entrance         string  `json:"entrance"`
	Size             float64 `json:"size"`
	CoOwnershipShare float64 `json:"co_ownership_share"`
	Rooms            float64 `json:"rooms"`
}

// Advisory is a non-blocking warning surfaced to the human reviewer.
type Advisory struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ExtractResponse struct {
	Address  *string         `json:"address"`
	Units    []ExtractedUnit `json:"units"`
	Warnings []Advisory      `json:"warnings"`
}
