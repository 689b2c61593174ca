package constants

import "net/url"

type Region struct {
	Key   string
	Query string
}

// GetRegions returns the regional keys in fetch order.
func GetRegions() []Region {
	var regions []Region
	regions = append(regions, Region{Key: "Bangalore", Query: "bangalore OR bengaluru"})
	regions = append(regions, Region{Key: "Mumbai", Query: "mumbai"})
	regions = append(regions, Region{Key: "Delhi", Query: "delhi"})
	return regions
}

// FeedURL builds the search feed URL of the region, restricted to the last hour.
func (r Region) FeedURL(baseURL string) string {
	values := url.Values{}
	values.Set("q", r.Query+" when:1h")
	values.Set("hl", "en-IN")
	values.Set("gl", "IN")
	values.Set("ceid", "IN:en")
	return baseURL + "?" + values.Encode()
}

func GetRegionKeys() []string {
	regions := GetRegions()
	keys := make([]string, 0, len(regions))
	for _, region := range regions {
		keys = append(keys, region.Key)
	}
	return keys
}
