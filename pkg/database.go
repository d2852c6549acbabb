package evdisplay

import (
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "modernc.org/sqlite"
)

// ConnectToDatabase opens the geometry catalogue. With the sqlite driver
// dbname is the database file.
func ConnectToDatabase(driver string, user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	switch driver {
	case "sqlite":
		return sqlx.Connect("sqlite", dbname)
	case "", "mysql":
		port := "3306"
		dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
		return sqlx.Connect("mysql", dbURI)
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

type shapeRow struct {
	ShapeID        int     `db:"ShapeID"`
	Detector       string  `db:"Detector"`
	MinRun         int     `db:"MinRun"`
	MaxRun         int     `db:"MaxRun"`
	Name           string  `db:"Name"`
	Layer          string  `db:"Layer"`
	Type           string  `db:"Type"`
	SizeX          float64 `db:"SizeX"`
	SizeY          float64 `db:"SizeY"`
	SizeZ          float64 `db:"SizeZ"`
	Radius         float64 `db:"Radius"`
	Height         float64 `db:"Height"`
	CenterX        float64 `db:"CenterX"`
	CenterY        float64 `db:"CenterY"`
	CenterZ        float64 `db:"CenterZ"`
	Opacity        float64 `db:"Opacity"`
	Representation string  `db:"Representation"`
	ColorR         float64 `db:"ColorR"`
	ColorG         float64 `db:"ColorG"`
	ColorB         float64 `db:"ColorB"`
}

func (r shapeRow) shape() Shape {
	return Shape{
		Name:           r.Name,
		Layer:          r.Layer,
		Type:           ShapeType(r.Type),
		Size:           Vec3{r.SizeX, r.SizeY, r.SizeZ},
		Radius:         r.Radius,
		Height:         r.Height,
		Center:         Vec3{r.CenterX, r.CenterY, r.CenterZ},
		Opacity:        r.Opacity,
		Representation: Representation(r.Representation),
		Color:          Vec3{r.ColorR, r.ColorG, r.ColorB},
	}
}

const createShapesTable = `CREATE TABLE IF NOT EXISTS DetectorShapes (
	ShapeID INTEGER NOT NULL,
	Detector VARCHAR(64) NOT NULL,
	MinRun INTEGER NOT NULL,
	MaxRun INTEGER NOT NULL,
	Name VARCHAR(64) NOT NULL,
	Layer VARCHAR(64) NOT NULL,
	Type VARCHAR(16) NOT NULL,
	SizeX DOUBLE NOT NULL DEFAULT 0,
	SizeY DOUBLE NOT NULL DEFAULT 0,
	SizeZ DOUBLE NOT NULL DEFAULT 0,
	Radius DOUBLE NOT NULL DEFAULT 0,
	Height DOUBLE NOT NULL DEFAULT 0,
	CenterX DOUBLE NOT NULL,
	CenterY DOUBLE NOT NULL,
	CenterZ DOUBLE NOT NULL,
	Opacity DOUBLE NOT NULL,
	Representation VARCHAR(16) NOT NULL,
	ColorR DOUBLE NOT NULL,
	ColorG DOUBLE NOT NULL,
	ColorB DOUBLE NOT NULL,
	PRIMARY KEY (Detector, MinRun, ShapeID)
)`

const insertShape = `INSERT INTO DetectorShapes
	(ShapeID, Detector, MinRun, MaxRun, Name, Layer, Type, SizeX, SizeY, SizeZ,
	 Radius, Height, CenterX, CenterY, CenterZ, Opacity, Representation, ColorR, ColorG, ColorB)
	VALUES
	(:ShapeID, :Detector, :MinRun, :MaxRun, :Name, :Layer, :Type, :SizeX, :SizeY, :SizeZ,
	 :Radius, :Height, :CenterX, :CenterY, :CenterZ, :Opacity, :Representation, :ColorR, :ColorG, :ColorB)`

func CreateGeometryTable(db *sqlx.DB) error {
	if _, err := db.Exec(createShapesTable); err != nil {
		return fmt.Errorf("error creating DetectorShapes table: %w", err)
	}
	return nil
}

// StoreGeometry inserts the shapes of a detector valid for runs
// [minRun, maxRun] in a single transaction.
func StoreGeometry(db *sqlx.DB, detector string, minRun int, maxRun int, shapes []Shape) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	for i, s := range shapes {
		row := shapeRow{
			ShapeID:        i,
			Detector:       detector,
			MinRun:         minRun,
			MaxRun:         maxRun,
			Name:           s.Name,
			Layer:          s.Layer,
			Type:           string(s.Type),
			SizeX:          s.Size[0],
			SizeY:          s.Size[1],
			SizeZ:          s.Size[2],
			Radius:         s.Radius,
			Height:         s.Height,
			CenterX:        s.Center[0],
			CenterY:        s.Center[1],
			CenterZ:        s.Center[2],
			Opacity:        s.Opacity,
			Representation: string(s.Representation),
			ColorR:         s.Color[0],
			ColorG:         s.Color[1],
			ColorB:         s.Color[2],
		}
		if _, err := tx.NamedExec(insertShape, row); err != nil {
			return fmt.Errorf("error inserting shape %s: %w", s.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing geometry: %w", err)
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Stored %d shapes for %s runs %d-%d", len(shapes), detector, minRun, maxRun)
		logger.Info(message, "database")
	}
	return nil
}

// GetGeometryFromDB reads the shapes of a detector valid for a run, in
// insertion order.
func GetGeometryFromDB(db *sqlx.DB, detector string, runNumber int) ([]Shape, error) {
	query := "SELECT * FROM DetectorShapes WHERE Detector = ? AND MinRun <= ? AND MaxRun >= ? ORDER BY ShapeID"

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Reading %s geometry for run %d from database", detector, runNumber)
		logger.Info(message, "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query, detector, runNumber, runNumber)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	shapes := make([]Shape, 0)
	for rows.Next() {
		result := shapeRow{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		shapes = append(shapes, result.shape())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	return shapes, nil
}
