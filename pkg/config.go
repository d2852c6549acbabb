package evdisplay

type Configuration struct {
	FileIn           string `json:"file_in"`
	Event            int    `json:"event"`
	Field            string `json:"field"`
	LogScale         bool   `json:"log_scale"`
	Animation        bool   `json:"animation"`
	NearDetector     bool   `json:"near_detector"`
	FarDetector      bool   `json:"far_detector"`
	Cryostat         bool   `json:"cryostat"`
	Verbosity        int    `json:"verbosity"`
	Layout           Layout `json:"layout"`
	OutputHTML       string `json:"output_html"`
	OutputPNG        string `json:"output_png"`
	OutputHist       string `json:"output_hist"`
	OutputPCD        string `json:"output_pcd"`
	OutputCSV        string `json:"output_csv"`
	OutputScene      string `json:"output_scene"`
	Projection       string `json:"projection"`
	Viewer           string `json:"viewer"`
	GeometryFile     string `json:"geometry_file"`
	NoDB             bool   `json:"no_db"`
	DBDriver         string `json:"db_driver"`
	Host             string `json:"host"`
	User             string `json:"user"`
	Passwd           string `json:"pass"`
	DBName           string `json:"dbname"`
	Detector         string `json:"detector"`
	Run              int    `json:"run"`
	ViewWidth        int    `json:"view_width"`
	ViewHeight       int    `json:"view_height"`
	OrbitDuration    int    `json:"orbit_duration"`
	CompressionLevel int    `json:"compression_level"`
}

// Layout names the HDF5 objects holding the event table.
type Layout struct {
	Group       string    `json:"group"`
	EventIndex  string    `json:"event_index"`
	HitCount    string    `json:"hit_count"`
	HitsGroup   string    `json:"hits_group"`
	EventGroup  string    `json:"event_group"`
	Coordinates [3]string `json:"coordinates"`
}

func DefaultLayout() Layout {
	return Layout{
		Group:       "argon",
		EventIndex:  "ev",
		HitCount:    "nq",
		HitsGroup:   "hits",
		EventGroup:  "event",
		Coordinates: [3]string{"xq", "yq", "zq"},
	}
}

var configuration = Configuration{Layout: DefaultLayout(), CompressionLevel: 4}

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
