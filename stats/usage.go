package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// MonthlyUsage aggregates pipeline activity for one calendar month.
type MonthlyUsage struct {
	Analyses    int       `json:"analyses"`
	FetchErrors int       `json:"fetch_errors"`
	StoreWrites int       `json:"store_writes"`
	StoreErrors int       `json:"store_errors"`
	LastUpdated time.Time `json:"last_updated"`
}

// Usage tracks analysis activity per month and persists it to a JSON
// file. Store failures from the fire-and-forget persistence path are
// only observable here and in the logs.
type Usage struct {
	mutex       sync.RWMutex
	months      map[string]*MonthlyUsage // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
}

// NewUsage creates the usage tracker, loading any existing counters
// from dataDir and starting the background writer.
func NewUsage(dataDir string) (*Usage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	u := &Usage{
		months:      make(map[string]*MonthlyUsage),
		filePath:    filepath.Join(dataDir, "usage.json"),
		writeBuffer: make(chan struct{}, 1),
	}

	if err := u.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load usage stats: %w", err)
	}

	go u.backgroundWriter()

	return u, nil
}

func (u *Usage) load() error {
	data, err := os.ReadFile(u.filePath)
	if err != nil {
		return err
	}

	u.mutex.Lock()
	defer u.mutex.Unlock()

	return json.Unmarshal(data, &u.months)
}

func (u *Usage) save() error {
	u.mutex.RLock()
	data, err := json.Marshal(u.months)
	u.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal usage stats: %w", err)
	}

	// Write to a temporary file, then rename so readers never see a
	// partial file.
	tempFile := u.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, u.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (u *Usage) backgroundWriter() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-u.writeBuffer:
			u.save()
		case <-ticker.C:
			u.save()
		}
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

// requestWrite signals the background writer without blocking; a full
// buffer means a write is already pending.
func (u *Usage) requestWrite() {
	select {
	case u.writeBuffer <- struct{}{}:
	default:
	}
}

// Record adds the given deltas to the current month's counters.
func (u *Usage) Record(analyses, fetchErrors, storeWrites, storeErrors int) {
	month := currentMonth()

	u.mutex.Lock()
	defer u.mutex.Unlock()

	usage, exists := u.months[month]
	if !exists {
		usage = &MonthlyUsage{}
		u.months[month] = usage
	}

	usage.Analyses += analyses
	usage.FetchErrors += fetchErrors
	usage.StoreWrites += storeWrites
	usage.StoreErrors += storeErrors
	usage.LastUpdated = time.Now()

	if time.Since(u.lastWrite) > time.Minute {
		u.requestWrite()
		u.lastWrite = time.Now()
	}
}

// Current returns the counters for the current month.
func (u *Usage) Current() MonthlyUsage {
	month := currentMonth()

	u.mutex.RLock()
	defer u.mutex.RUnlock()

	if usage, exists := u.months[month]; exists {
		return *usage
	}
	return MonthlyUsage{}
}

// Month returns the counters for a specific "YYYY-MM" month.
func (u *Usage) Month(yearMonth string) (MonthlyUsage, bool) {
	u.mutex.RLock()
	defer u.mutex.RUnlock()

	if usage, exists := u.months[yearMonth]; exists {
		return *usage, true
	}
	return MonthlyUsage{}, false
}

// Months returns all months with recorded activity, newest first.
func (u *Usage) Months() []string {
	u.mutex.RLock()
	defer u.mutex.RUnlock()

	months := make([]string, 0, len(u.months))
	for month := range u.months {
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Flush forces an immediate write of the counters to disk.
func (u *Usage) Flush() error {
	return u.save()
}
