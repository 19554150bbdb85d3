package domain

import "time"

// VisitorMetric is a page view recorded with a hashed client address.
type VisitorMetric struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type PathStat struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type VisitorStats struct {
	TotalVisitors    int64      `json:"total_visitors"`
	UniqueVisitors   int64      `json:"unique_visitors"`
	VisitorsToday    int64      `json:"visitors_today"`
	VisitorsThisWeek int64      `json:"visitors_this_week"`
	TopPaths         []PathStat `json:"top_paths"`
}

type ContentCounts struct {
	Projects       int `json:"projects"`
	FeaturedCount  int `json:"featured_projects"`
	Skills         int `json:"skills"`
	Experience     int `json:"experience"`
	Education      int `json:"education"`
	Certifications int `json:"certifications"`
	Messages       int `json:"messages"`
	UnreadMessages int `json:"unread_messages"`
}

// AdminStats is the admin overview payload.
type AdminStats struct {
	VisitorStats
	Content        ContentCounts   `json:"content"`
	RecentVisitors []VisitorMetric `json:"recent_visitors"`
}
