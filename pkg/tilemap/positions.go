// Package tilemap lays the 47 prefectures of Japan out on a fixed tile grid
// and picks a fill colour per tile.
package tilemap

import (
	"maps"
	"slices"
)

// Position is a tile's grid slot and its short label.
type Position struct {
	Col   int    `json:"col"   yaml:"col"`
	Row   int    `json:"row"   yaml:"row"`
	Short string `json:"short" yaml:"short"`
}

// Keyed by JIS prefecture code.
var positions = map[string]Position{
	"01": {Col: 10, Row: 1, Short: "北海"},
	"02": {Col: 9, Row: 2, Short: "青森"},
	"03": {Col: 10, Row: 3, Short: "岩手"},
	"04": {Col: 9, Row: 3, Short: "宮城"},
	"05": {Col: 8, Row: 2, Short: "秋田"},
	"06": {Col: 8, Row: 3, Short: "山形"},
	"07": {Col: 8, Row: 4, Short: "福島"},
	"08": {Col: 10, Row: 5, Short: "茨城"},
	"09": {Col: 9, Row: 5, Short: "栃木"},
	"10": {Col: 8, Row: 5, Short: "群馬"},
	"11": {Col: 9, Row: 6, Short: "埼玉"},
	"12": {Col: 10, Row: 6, Short: "千葉"},
	"13": {Col: 9, Row: 7, Short: "東京"},
	"14": {Col: 9, Row: 8, Short: "神奈"},
	"15": {Col: 7, Row: 4, Short: "新潟"},
	"16": {Col: 6, Row: 5, Short: "富山"},
	"17": {Col: 5, Row: 4, Short: "石川"},
	"18": {Col: 5, Row: 5, Short: "福井"},
	"19": {Col: 8, Row: 7, Short: "山梨"},
	"20": {Col: 7, Row: 6, Short: "長野"},
	"21": {Col: 6, Row: 6, Short: "岐阜"},
	"22": {Col: 8, Row: 8, Short: "静岡"},
	"23": {Col: 6, Row: 7, Short: "愛知"},
	"24": {Col: 6, Row: 8, Short: "三重"},
	"25": {Col: 5, Row: 7, Short: "滋賀"},
	"26": {Col: 5, Row: 8, Short: "京都"},
	"27": {Col: 5, Row: 9, Short: "大阪"},
	"28": {Col: 4, Row: 8, Short: "兵庫"},
	"29": {Col: 6, Row: 9, Short: "奈良"},
	"30": {Col: 6, Row: 10, Short: "和歌"},
	"31": {Col: 4, Row: 7, Short: "鳥取"},
	"32": {Col: 3, Row: 7, Short: "島根"},
	"33": {Col: 4, Row: 9, Short: "岡山"},
	"34": {Col: 3, Row: 9, Short: "広島"},
	"35": {Col: 2, Row: 9, Short: "山口"},
	"36": {Col: 6, Row: 11, Short: "徳島"},
	"37": {Col: 5, Row: 11, Short: "香川"},
	"38": {Col: 4, Row: 11, Short: "愛媛"},
	"39": {Col: 5, Row: 12, Short: "高知"},
	"40": {Col: 2, Row: 11, Short: "福岡"},
	"41": {Col: 1, Row: 12, Short: "佐賀"},
	"42": {Col: 1, Row: 11, Short: "長崎"},
	"43": {Col: 2, Row: 12, Short: "熊本"},
	"44": {Col: 3, Row: 11, Short: "大分"},
	"45": {Col: 3, Row: 12, Short: "宮崎"},
	"46": {Col: 2, Row: 13, Short: "鹿児"},
	"47": {Col: 0, Row: 15, Short: "沖縄"},
}

// Positions returns a copy of the full grid keyed by prefecture code.
func Positions() map[string]Position {
	return maps.Clone(positions)
}

// Codes returns every prefecture code in ascending order.
func Codes() []string {
	return slices.Sorted(maps.Keys(positions))
}

// Lookup returns the grid slot of a prefecture code.
func Lookup(code string) (Position, bool) {
	p, ok := positions[code]

	return p, ok
}

// Tile geometry in SVG user units.
const (
	CellWidth  = 38
	CellHeight = 34
	Gap        = 2
	MaxCol     = 11
	MaxRow     = 16
)

// Width is the drawing width of the whole grid.
func Width() int { return MaxCol * (CellWidth + Gap) }

// Height is the drawing height of the whole grid.
func Height() int { return MaxRow * (CellHeight + Gap) }

// Origin returns the top-left corner of a tile.
func Origin(p Position) (x, y int) {
	return p.Col * (CellWidth + Gap), p.Row * (CellHeight + Gap)
}
