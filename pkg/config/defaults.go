package config

// Data defaults.
const (
	DefaultDataDir = "data"
	DefaultYear    = 2026
)

// Server defaults.
const (
	DefaultHost = "127.0.0.1"
	DefaultPort = 8080
)

// Report defaults.
const (
	DefaultTheme = "light"
	DefaultTitle = "選挙結果ダッシュボード"
)
