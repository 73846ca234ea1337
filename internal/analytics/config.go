// Package analytics derives progress signals from raw study and expense
// logs: streaks, XP and levels, weak-topic detection, clustering insights
// and a linear spending forecast. Every function is a pure computation
// over the snapshot it is handed; "now" is always an explicit parameter.
package analytics

// Status markers for analyses that degrade instead of failing.
const (
	StatusSuccess             = "success"
	StatusInsufficientData    = "insufficient_data"
	StatusInsufficientHistory = "insufficient_history"
	StatusClusteringFailed    = "clustering_failed"
	StatusPredictionFailed    = "prediction_failed"
)

// Config collects every heuristic threshold used by the analytics so tests
// can override them in one place.
type Config struct {
	// XP
	BaseXPPerMinute      int
	ConfidenceMultiplier map[int]float64
	StreakBonusPerDay    float64
	StreakBonusCap       float64
	MinSessionXP         int
	LevelThresholds      []int

	// Weakness analysis
	WeaknessThreshold float64 // mean confidence below this is weak
	MinTopicSessions  int     // sessions per topic for reliable analysis
	MinTotalSessions  int     // sessions overall before any analysis runs
	DecliningTrend    float64 // trend below this flags a topic
	LowConsistency    float64 // consistency below this flags a topic

	// Insights
	MinClusterTopics int   // topic groups needed before clustering
	ClusterSeed      int64 // fixed seed so clustering is reproducible
	TrendWindow      int   // rows compared on each side of the trend split

	// Forecasting
	MinForecastExpenses int
	DefaultForecastDays int
}

func DefaultConfig() Config {
	return Config{
		BaseXPPerMinute:      2,
		ConfidenceMultiplier: map[int]float64{1: 0.5, 2: 0.7, 3: 1.0, 4: 1.3, 5: 1.5},
		StreakBonusPerDay:    0.1,
		StreakBonusCap:       0.5,
		MinSessionXP:         5,
		LevelThresholds: []int{
			0, 100, 250, 450, 700, 1000, 1400, 1850, 2350, 2900, 3500,
			4200, 5000, 5900, 6900, 8000, 9200, 10500, 12000, 13600, 15300,
		},

		WeaknessThreshold: 3.0,
		MinTopicSessions:  3,
		MinTotalSessions:  5,
		DecliningTrend:    -0.5,
		LowConsistency:    0.3,

		MinClusterTopics: 3,
		ClusterSeed:      42,
		TrendWindow:      7,

		MinForecastExpenses: 5,
		DefaultForecastDays: 30,
	}
}

// Engine evaluates the gamification and analysis rules under one Config.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// NewDefaultEngine returns an Engine with DefaultConfig.
func NewDefaultEngine() *Engine {
	return NewEngine(DefaultConfig())
}
