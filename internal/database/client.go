package database

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/qidlabs/flightcapacity/internal/log"
	"github.com/qidlabs/flightcapacity/pkg/config"
	"go.uber.org/zap"
)

// Client holds the connection to the cargo capacity database
type Client struct {
	dbConfig *config.DatabaseData
	DB       *gorm.DB // Exported so it can be accessed from other packages
	logger   *zap.SugaredLogger
}

// NewClient creates a new database client
func NewClient(dbConfig *config.DatabaseData, logger *zap.SugaredLogger) *Client {
	return &Client{
		dbConfig: dbConfig,
		logger:   logger,
	}
}

// Connect connects to the cargo capacity database
func (c *Client) Connect() error {
	log.Info("connecting to cargo capacity database...")

	db, err := CreateConnection(c.dbConfig)
	if err != nil {
		log.Warn("warning: unable to create a cargo capacity database connection:", err)
		return err
	}
	c.DB = db
	log.Info("cargo capacity database connection successful")

	return nil
}

// GetCapacityTransactions retrieves reported cargo figures for a flight
// within the date window [from, to]
func (c *Client) GetCapacityTransactions(fltNo, origin, destination string, from, to time.Time) ([]CapacityTransaction, error) {
	var rows []CapacityTransaction

	err := c.DB.Table("capacity_transactions").
		Where("flt_no = ? AND origin = ? AND destination = ? AND flt_date BETWEEN ? AND ?",
			fltNo, origin, destination, from, to).
		Order("flt_date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error querying capacity transactions: %v", err)
	}

	return rows, nil
}

// GetForecastRows retrieves route schedule forecasts joined with their
// passenger forecast counterparts for a flight within [from, to]. Rows
// without a matching passenger forecast are dropped by the inner join.
func (c *Client) GetForecastRows(fltNo, origin, destination string, from, to time.Time) ([]ForecastRow, error) {
	var rows []ForecastRow

	err := c.DB.Table("route_schedule_forecasts AS rsf").
		Select("rsf.flt_no, rsf.departure_date, rsf.origin, rsf.destination, rsf.departed_weight, rsf.underload, rsf.hold_volume, pf.expected_pax").
		Joins("JOIN pax_forecasts pf ON pf.flt_no = rsf.flt_no AND pf.origin = rsf.origin AND pf.destination = rsf.destination AND pf.departure_date = rsf.departure_date").
		Where("rsf.flt_no = ? AND rsf.origin = ? AND rsf.destination = ? AND rsf.departure_date BETWEEN ? AND ?",
			fltNo, origin, destination, from, to).
		Order("rsf.departure_date").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("error querying route schedule forecasts: %v", err)
	}

	return rows, nil
}

// CreateConnection is a helper function to create a database connection with standard GORM configuration
func CreateConnection(dbConfig *config.DatabaseData) (*gorm.DB, error) {
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dbConfig.DSN()), &gorm.Config{Logger: dbLogger})
	if err != nil {
		return nil, err
	}

	return db, nil
}
