package api

import (
	"encoding/json"
	"slices"

	"github.com/opencamp/bootcamp-mgmt/pkg/types"
)

type pageInfo struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type pagination struct {
	Next *pageInfo `json:"next,omitempty"`
	Prev *pageInfo `json:"prev,omitempty"`
}

type apiResponse struct {
	Success    bool        `json:"success"`
	Count      *uint64     `json:"count,omitempty"`
	Pagination *pagination `json:"pagination,omitempty"`
	Data       any         `json:"data"`
}

func (r apiResponse) Byte() []byte {
	b, _ := json.Marshal(r)
	return b
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func (r errorResponse) Byte() []byte {
	b, _ := json.Marshal(r)
	return b
}

// newPagination derives the next/prev page descriptors from a collection
// window. A collection without a window (radius search in unpaginated
// mode) yields no pagination block.
func newPagination(offset, limit, total uint64) *pagination {
	if limit == 0 {
		return nil
	}

	page := int(offset/limit) + 1

	p := &pagination{}

	if offset+limit < total {
		p.Next = &pageInfo{Page: page + 1, Limit: int(limit)}
	}

	if page > 1 {
		p.Prev = &pageInfo{Page: page - 1, Limit: int(limit)}
	}

	return p
}

func collectionResponse[T any](c types.Collection[T], fields []string) apiResponse {
	return apiResponse{
		Success:    true,
		Count:      &c.Count,
		Pagination: newPagination(c.Offset, c.Limit, c.TotalCount),
		Data:       project(c.Data, fields),
	}
}

func entityResponse(data any) apiResponse {
	return apiResponse{
		Success: true,
		Data:    data,
	}
}

// project reduces each entity to the requested subset of fields. The id is
// always kept. Without a field list the entities pass through untouched.
func project[T any](data []T, fields []string) any {
	if len(fields) == 0 {
		return data
	}

	if !slices.Contains(fields, "id") {
		fields = append(fields, "id")
	}

	projected := make([]map[string]any, 0, len(data))

	for _, entity := range data {
		b, err := json.Marshal(entity)
		if err != nil {
			continue
		}

		var m map[string]any
		if err := json.Unmarshal(b, &m); err != nil {
			continue
		}

		p := map[string]any{}
		for _, f := range fields {
			if v, ok := m[f]; ok {
				p[f] = v
			}
		}

		projected = append(projected, p)
	}

	return projected
}
