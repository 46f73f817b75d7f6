package sections

import (
	"net/url"
	"strconv"

	"github.com/goliatone/go-microsite/internal/render"
	"github.com/goliatone/go-microsite/website"
)

const (
	defaultMapZoom   = 15
	mapsSearchPrefix = "https://www.google.com/maps/search/?api=1&query="
)

// Map renders the venue location with a directions link.
type Map struct{}

func (Map) Type() website.SectionType { return website.SectionMap }

func (Map) Render(ctx render.BlockContext) (render.Node, error) {
	data := ctx.Section.Data
	root := container(website.SectionMap, heading(ctx, stringField(data, "title")))

	address := stringField(data, "address")
	venue := stringField(data, "venue")
	if venue != "" {
		root = root.Append(editable(ctx, paragraph(venue).WithRole("venue"), "venue"))
	}
	if address != "" {
		root = root.Append(editable(ctx, paragraph(address).WithRole("address"), "address"))
	}

	zoom := defaultMapZoom
	if value, ok := floatField(data, "zoom"); ok && value > 0 {
		zoom = int(value)
	}
	mapNode := render.Node{Kind: "map"}.WithAttr("zoom", strconv.Itoa(zoom))
	query := address
	lat, hasLat := floatField(data, "lat")
	lng, hasLng := floatField(data, "lng")
	if hasLat && hasLng {
		coords := strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
		mapNode = mapNode.WithAttr("lat", strconv.FormatFloat(lat, 'f', -1, 64)).
			WithAttr("lng", strconv.FormatFloat(lng, 'f', -1, 64))
		query = coords
	}
	if query == "" {
		return root.Append(paragraph("Location coming soon")), nil
	}
	root = root.Append(mapNode)
	link := render.TextNode("link", "Get directions").
		WithAttr("href", mapsSearchPrefix+url.QueryEscape(query)).
		WithStyle("color", render.ColorVar(website.ColorAccent)).
		WithStyle("font-family", render.FontVar(website.FontBody))
	return root.Append(link), nil
}

func (Map) Schema() map[string]any {
	return objectSchema(map[string]any{
		"title":   stringProp(),
		"venue":   stringProp(),
		"address": stringProp(),
		"lat":     map[string]any{"type": "number"},
		"lng":     map[string]any{"type": "number"},
		"zoom":    map[string]any{"type": "number"},
	})
}
