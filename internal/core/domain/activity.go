package domain

import "time"

// ActivityEntry is one counter mutation in the local activity log.
// Entries are append-only and never synced between replicas.
type ActivityEntry struct {
	ID       int64       `json:"id"`
	Time     time.Time   `json:"time"`
	Day      LocalDayKey `json:"day"`
	Queue    QueueMode   `json:"queue"`
	Delta    int         `json:"delta"`
	NewValue int         `json:"newValue"`
	Source   string      `json:"source,omitempty"`
	TicketID string      `json:"ticketId,omitempty"`
}

// Backup is the portable snapshot of all synced state.
type Backup struct {
	BackupTime time.Time    `json:"backupTime"`
	Settings   Settings     `json:"settings"`
	Counters   Counters     `json:"counters"`
	History    DailyHistory `json:"history"`
}

// DayStat is one row of the weekly summary.
type DayStat struct {
	Day       LocalDayKey `json:"day"`
	Record    DayRecord   `json:"record"`
	MetGoal   bool        `json:"metGoal"`
	ChatPct   int         `json:"chatPct"`
	TicketPct int         `json:"ticketPct"`
}

// StatsSummary is the aggregate returned by the stats endpoint, newest
// day first with today synthesized from the live counters.
type StatsSummary struct {
	Days   []DayStat `json:"days"`
	Streak int       `json:"streak"`
}
