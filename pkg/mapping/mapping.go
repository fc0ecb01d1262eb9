package mapping

import (
	"sort"

	"github.com/chris/shop-reorder-ledger/pkg/api"
	"github.com/chris/shop-reorder-ledger/pkg/models"
)

// ToDomainDelivery converts an API DeliveryRequest to a domain Delivery.
func ToDomainDelivery(req *api.DeliveryRequest) *models.Delivery {
	return &models.Delivery{
		Quantity:        req.Quantity,
		ExpirationDates: req.ExpirationDates,
	}
}

// ToApiShopStatus converts the domain ShopStatus to its API model.
func ToApiShopStatus(status *models.ShopStatus) *api.ShopStatus {
	return &api.ShopStatus{
		ShopId:           status.State.ShopID,
		Inventory:        status.State.Inventory,
		RetailPrice:      status.State.RetailPrice,
		WholesalePrice:   status.State.WholesalePrice,
		ReorderThreshold: status.State.ReorderThreshold,
		ReorderQuantity:  status.State.ReorderQuantity,
		Distributor:      status.State.Distributor,
		PaymentCustody:   status.PaymentCustody,
		RewardCustody:    status.RewardCustody,
	}
}

// ToApiRatings converts the rating map to a stable, sorted list.
func ToApiRatings(ratings map[string]int64) []api.RatingEntry {
	entries := make([]api.RatingEntry, 0, len(ratings))
	for distributor, deliveries := range ratings {
		entries = append(entries, api.RatingEntry{
			Distributor: distributor,
			Deliveries:  deliveries,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Distributor < entries[j].Distributor
	})
	return entries
}
