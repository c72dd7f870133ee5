package handler

import (
	"github.com/securepass/securepass/internal/core/domain"
	"github.com/securepass/securepass/internal/core/ports"
)

const entriesPath = "/passwords"

// --- Request → Service input ---

func toCreateEntryInput(req createEntryRequest) ports.CreateEntryInput {
	return ports.CreateEntryInput{Label: req.Label, Secret: req.Password}
}

func toUpdateEntryInput(req updateEntryRequest) ports.UpdateEntryInput {
	return ports.UpdateEntryInput{Label: req.Label, Secret: req.Password}
}

func toGenerationSpec(q generatorQuery) domain.GenerationSpec {
	return domain.GenerationSpec{
		Length:  q.Length,
		Upper:   q.Uppercase,
		Lower:   q.Lowercase,
		Digits:  q.Numbers,
		Special: q.Special,
	}
}

// --- Service result → HTTP response ---

// toEntryResponse attaches the hypermedia link at the serialization boundary.
func toEntryResponse(v domain.VaultEntryView) entryResponse {
	return entryResponse{
		ID:       v.ID,
		Label:    v.Label,
		Password: v.Secret,
		Links:    entryLinks{Self: entriesPath + "/" + v.ID},
	}
}

func toListEntriesResponse(p *domain.Page[domain.VaultEntryView]) listEntriesResponse {
	data := make([]entryResponse, 0, len(p.Items))
	for _, v := range p.Items {
		data = append(data, toEntryResponse(v))
	}
	return listEntriesResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      p.TotalItems,
			Page:       p.PageIndex,
			Size:       p.PageSize,
			TotalPages: p.TotalPages,
		},
	}
}

func toCheckerResponse(r *domain.StrengthReport) checkerResponse {
	suggestions := r.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	return checkerResponse{Strength: r.Strength, Suggestions: suggestions}
}
