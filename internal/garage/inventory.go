package garage

import "github.com/ziadkadry99/aliverse/internal/bazi"

// Stock is one bar of the parts inventory: how many of the eight symbols
// carry an element.
type Stock struct {
	Element bazi.Element `json:"element"`
	Count   int          `json:"count"`
	Percent float64      `json:"percent"`
}

// inventoryOrder is the bar order of the chart (金木水火土).
var inventoryOrder = []bazi.Element{bazi.Metal, bazi.Wood, bazi.Water, bazi.Fire, bazi.Earth}

// Inventory counts elements over all eight symbols of the chart.
func Inventory(c bazi.Chart) []Stock {
	counts := make(map[bazi.Element]int, len(inventoryOrder))
	all := c.Elements()
	for _, e := range all {
		counts[e]++
	}
	out := make([]Stock, 0, len(inventoryOrder))
	for _, e := range inventoryOrder {
		out = append(out, Stock{
			Element: e,
			Count:   counts[e],
			Percent: float64(counts[e]) / float64(len(all)) * 100,
		})
	}
	return out
}
