package domain

var (
	MessageSuccessToggleFavorite = "favorite toggled"
	MessageSuccessCheckFavorite  = "success check favorite"
	MessageSuccessGetFavorites   = "success get favorites"
	MessageFailedToggleFavorite  = "failed to toggle favorite"
	MessageFailedCheckFavorite   = "failed to check favorite"
	MessageFailedGetFavorites    = "failed to get favorites"
	MessageInvalidFavoriteIDs    = "Invalid user or menu ID"
)

type (
	FavoriteStatusResponse struct {
		MenuID     uint `json:"menu_id"`
		IsFavorite bool `json:"is_favorite"`
	}

	FavoriteListResponse struct {
		MenuIDs []uint `json:"menu_ids"`
	}
)
