package types

// Envelope is the uniform response shape every endpoint returns. Data
// is null on failures, Meta is an empty object when unused, and Errors
// is always present and empty on success, so display clients never
// branch on shape.
type Envelope struct {
	Data   any      `json:"data"`
	Meta   any      `json:"meta"`
	Errors []string `json:"errors"`
}

// ListMeta describes a collection response.
type ListMeta struct {
	Count int `json:"count"`
}
