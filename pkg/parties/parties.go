// Package parties holds the party catalogue and the fixed Tokyo reference
// lists used to label and colour results.
package parties

import "slices"

// Party is one entry of the catalogue.
type Party struct {
	ID        string `json:"id"        yaml:"id"`
	Name      string `json:"name"      yaml:"name"`
	ShortName string `json:"shortName" yaml:"short_name"`
	Color     string `json:"color"     yaml:"color"`
}

// FallbackColor is used for parties missing from the catalogue.
const FallbackColor = "#cccccc"

var catalogue = []Party{
	{ID: "ldp", Name: "自由民主党", ShortName: "自民", Color: "#e60012"},
	{ID: "cdp", Name: "立憲民主党", ShortName: "立民", Color: "#00509d"},
	{ID: "ishin", Name: "日本維新の会", ShortName: "維新", Color: "#00a651"},
	{ID: "komei", Name: "公明党", ShortName: "公明", Color: "#f39800"},
	{ID: "jcp", Name: "日本共産党", ShortName: "共産", Color: "#c8161d"},
	{ID: "dpfp", Name: "国民民主党", ShortName: "国民", Color: "#ffd700"},
	{ID: "reiwa", Name: "れいわ新選組", ShortName: "れいわ", Color: "#ed6d8a"},
	{ID: "sdp", Name: "社会民主党", ShortName: "社民", Color: "#e95295"},
	{ID: "sansei", Name: "参政党", ShortName: "参政", Color: "#ff6b00"},
	{ID: "team-mirai", Name: "チームみらい", ShortName: "みらい", Color: "#00bfff"},
	{ID: "kibo", Name: "希望の党", ShortName: "希望", Color: "#00bcd4"},
	{ID: "hosyu", Name: "日本保守党", ShortName: "保守", Color: "#8b4513"},
	{ID: "chudo", Name: "中道改革連合", ShortName: "中道", Color: "#9370db"},
	{ID: "genzei", Name: "減税日本・ゆうこく連合", ShortName: "減税", Color: "#20b2aa"},
	{ID: "ind", Name: "無所属", ShortName: "無所属", Color: "#808080"},
	{ID: "honnin", Name: "本人届出", ShortName: "本人届出", Color: "#666666"},
	{ID: "other", Name: "その他", ShortName: "その他", Color: FallbackColor},
}

// Spellings used by the prefecture tile data that differ from the catalogue.
var aliasColors = map[string]string{
	"自民党":     "#e60012",
	"共産党":     "#c8161d",
	"維新の会":    "#00a651",
	"都民ファースト": "#ff69b4",
	"無所属・その他": "#808080",
}

var colorIndex = func() map[string]string {
	m := make(map[string]string, len(catalogue)*2+len(aliasColors))

	for name, c := range aliasColors {
		m[name] = c
	}

	for _, p := range catalogue {
		m[p.Name] = p.Color
		m[p.ShortName] = p.Color
	}

	return m
}()

// All returns a copy of the catalogue in display order.
func All() []Party {
	return slices.Clone(catalogue)
}

// Color returns the colour of a party by full or short name.
func Color(name string) string {
	if c, ok := LookupColor(name); ok {
		return c
	}

	return FallbackColor
}

// LookupColor reports the colour of name and whether it is known.
func LookupColor(name string) (string, bool) {
	c, ok := colorIndex[name]

	return c, ok
}

// Find looks a party up by name, short name or id.
func Find(name string) (Party, bool) {
	i := slices.IndexFunc(catalogue, func(p Party) bool {
		return p.Name == name || p.ShortName == name || p.ID == name
	})
	if i < 0 {
		return Party{}, false
	}

	return catalogue[i], true
}

// ShortName returns the catalogue short name, or name itself when unknown.
func ShortName(name string) string {
	if p, ok := Find(name); ok {
		return p.ShortName
	}

	return name
}

// TokyoWards lists the 23 special wards of Tokyo.
var TokyoWards = []string{
	"千代田区", "中央区", "港区", "新宿区", "文京区",
	"台東区", "墨田区", "江東区", "品川区", "目黒区",
	"大田区", "世田谷区", "渋谷区", "中野区", "杉並区",
	"豊島区", "北区", "荒川区", "板橋区", "練馬区",
	"足立区", "葛飾区", "江戸川区",
}

// TamaCities lists the 26 cities of the Tama area.
var TamaCities = []string{
	"八王子市", "立川市", "武蔵野市", "三鷹市", "青梅市",
	"府中市", "昭島市", "調布市", "町田市", "小金井市",
	"小平市", "日野市", "東村山市", "国分寺市", "国立市",
	"福生市", "狛江市", "東大和市", "清瀬市", "東久留米市",
	"武蔵村山市", "多摩市", "稲城市", "羽村市", "あきる野市",
	"西東京市",
}

// Years lists the election years with published data, newest first.
var Years = []int{2026, 2024, 2021, 2017, 2014}
