package api

import (
	"log"
	"net/http"

	"github.com/AbhishekPandey12/foodorderingapp/internal/models"
	"github.com/go-chi/chi/v5"
)

type itemResponse struct {
	ID       string          `json:"id"`
	ItemName string          `json:"itemName"`
	Price    int64           `json:"price"`
	ItemType models.ItemType `json:"itemType"`
	ImageURL string          `json:"imageUrl,omitempty"`
}

func (api *Api) GetItemHandler(w http.ResponseWriter, r *http.Request) {
	found, err := api.items.GetItem(r.Context(), chi.URLParam(r, "item_id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := itemResponse{
		ID:       found.UUID,
		ItemName: found.ItemName,
		Price:    found.Price,
		ItemType: found.Type,
	}
	if api.images != nil && found.ImageKey != "" {
		url, err := api.images.PresignGet(r.Context(), found.ImageKey)
		if err != nil {
			// The item is still useful without its picture.
			log.Printf("[API] Could not sign image for item %s: %v", found.UUID, err)
		} else {
			resp.ImageURL = url
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
