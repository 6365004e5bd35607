package types

// GeoPoint carries a WGS84 coordinate pair plus the reported GPS accuracy.
type GeoPoint struct {
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Accuracy *float64 `json:"accuracy,omitempty"`
}
