package deck

import (
	"fmt"
	"strings"
)

// AssetFunc maps a pair key to whatever the presentation layer displays for it
type AssetFunc func(pairKey string) string

// RobohashAsset returns a robohash cat picture for the pair
func RobohashAsset(pairKey string) string {
	n := strings.TrimPrefix(pairKey, "pair-")
	return fmt.Sprintf("https://robohash.org/cat%s?set=set4&size=300x300", n)
}

// KeyAsset displays the pair key itself
func KeyAsset(pairKey string) string {
	return pairKey
}
