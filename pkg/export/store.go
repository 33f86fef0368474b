package export

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MarkTegna/netwalker/pkg/collect"
	"github.com/MarkTegna/netwalker/pkg/device"
	"github.com/MarkTegna/netwalker/pkg/prefix"
	"github.com/MarkTegna/netwalker/pkg/util"
)

// Store persists collection runs to SQLite for later re-export.
type Store struct {
	db *gorm.DB
}

// RunModel is one collection invocation.
type RunModel struct {
	ID               uint `gorm:"primaryKey"`
	StartedAt        time.Time
	FinishedAt       time.Time
	DevicesAttempted int
	DevicesSucceeded int
	PrefixCount      int
	ExceptionCount   int
}

// PrefixModel is one normalized prefix row.
type PrefixModel struct {
	ID        uint `gorm:"primaryKey"`
	RunID     uint `gorm:"index"`
	Device    string
	Platform  string
	VRF       string
	Prefix    string `gorm:"index"`
	Source    string
	Protocol  string
	VLAN      int
	Interface string
	Timestamp time.Time
}

// DedupModel is one (vrf, prefix) aggregate.
type DedupModel struct {
	ID          uint `gorm:"primaryKey"`
	RunID       uint `gorm:"index"`
	VRF         string
	Prefix      string
	DeviceCount int
	Devices     string // semicolon-joined sorted names
}

// ExceptionModel is one collection exception.
type ExceptionModel struct {
	ID        uint `gorm:"primaryKey"`
	RunID     uint `gorm:"index"`
	Device    string
	Command   string
	Type      string
	Token     string
	Message   string
	Timestamp time.Time
}

// SummaryModel is one summary/component relationship.
type SummaryModel struct {
	ID        uint `gorm:"primaryKey"`
	RunID     uint `gorm:"index"`
	Summary   string
	Component string
	Device    string
	VRF       string
}

// DeviceModel is one classified device.
type DeviceModel struct {
	ID       uint `gorm:"primaryKey"`
	RunID    uint `gorm:"index"`
	Name     string
	Host     string
	Hostname string
	Platform string
	Model    string
	Serial   string
}

// VLANModel is one per-device VLAN row.
type VLANModel struct {
	ID     uint `gorm:"primaryKey"`
	RunID  uint `gorm:"index"`
	Device string
	VLANID int
	Name   string
	Status string
}

// OpenStore opens (creating if necessary) the SQLite store and migrates the
// schema.
func OpenStore(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	if err := db.AutoMigrate(
		&RunModel{}, &PrefixModel{}, &DedupModel{}, &ExceptionModel{},
		&SummaryModel{}, &DeviceModel{}, &VLANModel{},
	); err != nil {
		return nil, fmt.Errorf("migrating store schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveReport writes a full report as one run, in a single transaction.
func (s *Store) SaveReport(report *collect.Report) (uint, error) {
	run := RunModel{
		StartedAt:        report.StartedAt,
		FinishedAt:       report.FinishedAt,
		DevicesAttempted: report.Stats.DevicesAttempted,
		DevicesSucceeded: report.Stats.DevicesSucceeded,
		PrefixCount:      len(report.Normalized),
		ExceptionCount:   len(report.Exceptions),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&run).Error; err != nil {
			return err
		}
		for _, p := range report.Normalized {
			row := PrefixModel{
				RunID: run.ID, Device: p.Device, Platform: p.Platform,
				VRF: p.VRF, Prefix: p.Prefix, Source: string(p.Source),
				Protocol: p.Protocol, VLAN: p.VLAN, Interface: p.Interface,
				Timestamp: p.Timestamp,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, d := range report.Deduplicated {
			row := DedupModel{
				RunID: run.ID, VRF: d.VRF, Prefix: d.Prefix,
				DeviceCount: d.DeviceCount, Devices: strings.Join(d.Devices, ";"),
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, e := range report.Exceptions {
			row := ExceptionModel{
				RunID: run.ID, Device: e.Device, Command: e.Command,
				Type: string(e.Type), Token: e.Token, Message: e.Message,
				Timestamp: e.Timestamp,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, r := range report.Relationships {
			row := SummaryModel{
				RunID: run.ID, Summary: r.Summary, Component: r.Component,
				Device: r.Device, VRF: r.VRF,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, d := range report.Devices {
			row := DeviceModel{
				RunID: run.ID, Name: d.Name, Host: d.Host, Hostname: d.Hostname,
				Platform: d.Platform, Model: d.Model, Serial: d.Serial,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		for _, v := range report.VLANs {
			row := VLANModel{
				RunID: run.ID, Device: v.Device, VLANID: v.VLAN.ID,
				Name: v.VLAN.Name, Status: v.VLAN.Status,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("saving run: %w", err)
	}
	util.Infof("saved run %d: %d prefixes, %d exceptions", run.ID, run.PrefixCount, run.ExceptionCount)
	return run.ID, nil
}

// LatestRunID returns the id of the most recent run.
func (s *Store) LatestRunID() (uint, error) {
	var run RunModel
	if err := s.db.Order("id desc").First(&run).Error; err != nil {
		return 0, fmt.Errorf("%w: no runs in store", util.ErrNotFound)
	}
	return run.ID, nil
}

// LoadReport reconstructs a report from a stored run. The deduplicated and
// summarization collections are re-derived from the normalized rows so the
// re-export path exercises the same analysis code as a live run.
func (s *Store) LoadReport(runID uint) (*collect.Report, error) {
	var run RunModel
	if err := s.db.First(&run, runID).Error; err != nil {
		return nil, fmt.Errorf("%w: run %d", util.ErrNotFound, runID)
	}

	report := &collect.Report{StartedAt: run.StartedAt, FinishedAt: run.FinishedAt}

	var prefixRows []PrefixModel
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&prefixRows).Error; err != nil {
		return nil, err
	}
	for _, r := range prefixRows {
		report.Normalized = append(report.Normalized, prefix.NormalizedPrefix{
			Device: r.Device, Platform: r.Platform, VRF: r.VRF,
			Prefix: r.Prefix, Source: prefix.Source(r.Source),
			Protocol: r.Protocol, VLAN: r.VLAN, Interface: r.Interface,
			Timestamp: r.Timestamp,
		})
	}

	var excRows []ExceptionModel
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&excRows).Error; err != nil {
		return nil, err
	}
	for _, r := range excRows {
		report.Exceptions = append(report.Exceptions, prefix.CollectionException{
			Device: r.Device, Command: r.Command, Type: prefix.ExceptionType(r.Type),
			Token: r.Token, Message: r.Message, Timestamp: r.Timestamp,
		})
	}

	var devRows []DeviceModel
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&devRows).Error; err != nil {
		return nil, err
	}
	for _, r := range devRows {
		report.Devices = append(report.Devices, collect.DeviceInfo{
			Name: r.Name, Host: r.Host, Hostname: r.Hostname,
			Platform: r.Platform, Model: r.Model, Serial: r.Serial,
		})
	}

	var vlanRows []VLANModel
	if err := s.db.Where("run_id = ?", runID).Order("id").Find(&vlanRows).Error; err != nil {
		return nil, err
	}
	for _, r := range vlanRows {
		report.VLANs = append(report.VLANs, collect.DeviceVLAN{
			Device: r.Device,
			VLAN:   vlanFromRow(r),
		})
	}

	report.Deduplicated, report.Relationships = collect.Analyze(report.Normalized)
	report.Stats.DevicesAttempted = run.DevicesAttempted
	report.Stats.DevicesSucceeded = run.DevicesSucceeded
	return report, nil
}

func vlanFromRow(r VLANModel) device.VLAN {
	return device.VLAN{ID: r.VLANID, Name: r.Name, Status: r.Status}
}
