package distance

// Wire types for the Distance Matrix response. Only the fields the client
// reads are mapped.

type valueText struct {
	Value int    `json:"value"`
	Text  string `json:"text"`
}

type matrixElement struct {
	Status   string    `json:"status"`
	Duration valueText `json:"duration"`
	Distance valueText `json:"distance"`
}

type matrixRow struct {
	Elements []matrixElement `json:"elements"`
}

type matrixResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message"`
	Rows         []matrixRow `json:"rows"`
}
