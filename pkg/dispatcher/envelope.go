// Package dispatcher routes simulated HTTP requests to virtual service handlers.
package dispatcher

// Envelope is the uniform wire shape every simulated response conforms to.
// Callers always receive a structurally valid envelope, success or failure.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// Response pairs a handler-chosen status code with the wire envelope.
type Response struct {
	Status int
	Body   Envelope
}

// Paginated is the derived page slice nested inside an envelope's data.
type Paginated[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items deterministically for the requested page.
// totalPages is ceil(total/limit); an out-of-range page yields an empty slice.
func Paginate[T any](items []T, page, limit int) *Paginated[T] {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	total := len(items)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Paginated[T]{
		Data:       items[start:end],
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}
}
