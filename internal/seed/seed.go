// ============================================================================
// LAHORE TRANSIT NETWORK SEED - SafarLahore
// ============================================================================
// Seeds the Metro Bus line (27 stations, Gajjumata to Shahdara), the
// Orange Line (26 stations, Ali Town to Dera Gujran) and two feeder
// routes, then derives walking transfers between any two stops within
// 500m at the fixed 5 km/h walking pace.
// ============================================================================

package seed

import (
	"database/sql"
	"log"
	"math"

	"github.com/google/uuid"

	"github.com/yourorg/safarlahore/internal/geo"
	"github.com/yourorg/safarlahore/internal/models"
)

// transferRadiusM bounds which stop pairs get a walking transfer.
const transferRadiusM = 500.0

type seedStation struct {
	Name string
	Lat  float64
	Lng  float64
}

type seedRoute struct {
	Name     string
	Line     string
	Type     models.TransportType
	StopType models.StopType
	Color    string
	Stations []seedStation
}

// metroBusStations runs south to north, Gajjumata to Shahdara.
var metroBusStations = []seedStation{
	{"Gajjumata", 31.4697, 74.2728},
	{"Dullu Khurd", 31.4720, 74.2750},
	{"Youhanabad", 31.4740, 74.2770},
	{"Nishtar Colony", 31.4760, 74.2790},
	{"Atari Saroba", 31.4780, 74.2810},
	{"Kamahan", 31.4800, 74.2830},
	{"Chungi Amar Sidhu", 31.4820, 74.2850},
	{"Ghazi Chowk", 31.4840, 74.2870},
	{"Qainchi", 31.4860, 74.2890},
	{"Ittefaq Hospital", 31.4880, 74.2910},
	{"Naseerabad", 31.4900, 74.2930},
	{"Model Town", 31.4920, 74.2950},
	{"Kalma Chowk", 31.4940, 74.2970},
	{"Gaddafi Stadium", 31.4960, 74.2990},
	{"Canal", 31.4980, 74.3010},
	{"Ichhra", 31.5000, 74.3030},
	{"Shama", 31.5020, 74.3050},
	{"Qartaba Chowk", 31.5040, 74.3070},
	{"Janazgah", 31.5060, 74.3090},
	{"MAO College", 31.5080, 74.3110},
	{"Civil Secretariat", 31.5100, 74.3130},
	{"Katchehry", 31.5120, 74.3150},
	{"Bhati Chowk", 31.5140, 74.3170},
	{"Azadi Chowk", 31.5160, 74.3190},
	{"Timber Market", 31.5180, 74.3210},
	{"Niazi Chowk", 31.5200, 74.3230},
	{"Shahdara", 31.5220, 74.3250},
}

// orangeLineStations runs Ali Town to Dera Gujran.
var orangeLineStations = []seedStation{
	{"Ali Town", 31.5400, 74.3800},
	{"Thokar Niaz Baig", 31.5350, 74.3750},
	{"Canal View", 31.5300, 74.3700},
	{"Hanjarwal", 31.5250, 74.3650},
	{"Wahdat Road", 31.5200, 74.3600},
	{"Awan Town", 31.5150, 74.3550},
	{"Sabzazar", 31.5100, 74.3500},
	{"Shahnoor", 31.5050, 74.3450},
	{"Salahudin Road", 31.5000, 74.3400},
	{"Band Road", 31.4950, 74.3350},
	{"Samanabad", 31.4900, 74.3300},
	{"Gulshan-e-Ravi", 31.4850, 74.3250},
	{"Chauburji", 31.4800, 74.3200},
	{"Anarkali", 31.4750, 74.3150},
	{"GPO", 31.4700, 74.3100},
	{"Lakshmi", 31.4650, 74.3050},
	{"Railway Station", 31.4600, 74.3000},
	{"Sultanpura", 31.4550, 74.2950},
	{"UET", 31.4500, 74.2900},
	{"Baghbanpura", 31.4450, 74.2850},
	{"Shalamar Gardens", 31.4400, 74.2800},
	{"Pakistan Mint", 31.4350, 74.2750},
	{"Mahmood Booti", 31.4300, 74.2700},
	{"Salamatpura", 31.4250, 74.2650},
	{"Islam Park", 31.4200, 74.2600},
	{"Dera Gujran", 31.4150, 74.2550},
}

var seedRoutes = []seedRoute{
	{
		Name:     "Metro Bus System",
		Line:     "Metro Bus",
		Type:     models.TransportMetro,
		StopType: models.StopTypeMetro,
		Color:    "#0066CC",
		Stations: metroBusStations,
	},
	{
		Name:     "Orange Line Metro",
		Line:     "Orange Line",
		Type:     models.TransportOrangeLine,
		StopType: models.StopTypeOrangeLine,
		Color:    "#FF6B35",
		Stations: orangeLineStations,
	},
	{
		Name:     "FRT01 Railway Station to Bhatti Chowk",
		Line:     "FRT01",
		Type:     models.TransportFeeder,
		StopType: models.StopTypeFeeder,
		Color:    "#6B8E23",
		Stations: []seedStation{
			{"Railway Station (Feeder)", 31.4600, 74.3000},
			{"Ek Moriya", 31.4620, 74.3020},
			{"Nawaz Sharif Hospital", 31.4640, 74.3040},
			{"Kashmiri Gate", 31.4660, 74.3060},
			{"Lari Adda", 31.4680, 74.3080},
			{"Azadi Chowk (Feeder)", 31.4700, 74.3100},
			{"Texali Chowk", 31.4720, 74.3120},
			{"Bhatti Chowk", 31.4740, 74.3140},
		},
	},
	{
		Name:     "FRT10 Multan Chungi to Qartaba Chowk",
		Line:     "FRT10",
		Type:     models.TransportFeeder,
		StopType: models.StopTypeFeeder,
		Color:    "#6B8E23",
		Stations: []seedStation{
			{"Multan Chungi", 31.4800, 74.2800},
			{"Mustafa Town", 31.4820, 74.2850},
			{"Karim Block Market", 31.4840, 74.2900},
			{"PU Examination Center", 31.4860, 74.2950},
			{"Bhekewal Morr", 31.4880, 74.3000},
			{"Wahdat Colony", 31.4900, 74.3050},
			{"Naqsha Stop", 31.4920, 74.3100},
			{"Canal (Feeder)", 31.4940, 74.3150},
			{"Ichra (Feeder)", 31.4960, 74.3200},
			{"Shama (Feeder)", 31.4980, 74.3250},
			{"Qartaba Chowk (Feeder)", 31.5000, 74.3300},
		},
	},
}

// Run wipes and re-seeds the whole transit network.
func Run(db *sql.DB) error {
	log.Println("🌱 Seeding the Lahore transit network...")

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Children before parents: FKs cascade but the order keeps this
	// valid even without them.
	for _, table := range []string{"transfers", "route_stops", "routes", "stops"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	seeded := []models.Stop{}

	for _, route := range seedRoutes {
		routeID := uuid.New().String()
		if _, err := tx.Exec(
			"INSERT INTO routes (id, name, line, transport_type, color) VALUES (?, ?, ?, ?, ?)",
			routeID, route.Name, route.Line, string(route.Type), route.Color,
		); err != nil {
			return err
		}

		for order, station := range route.Stations {
			stop := models.Stop{
				ID:        uuid.New().String(),
				Name:      station.Name,
				Line:      route.Line,
				Latitude:  station.Lat,
				Longitude: station.Lng,
				Type:      route.StopType,
				IsStation: route.Type == models.TransportMetro || route.Type == models.TransportOrangeLine,
			}
			if _, err := tx.Exec(
				"INSERT INTO stops (id, name, line, latitude, longitude, type, is_station) VALUES (?, ?, ?, ?, ?, ?, ?)",
				stop.ID, stop.Name, stop.Line, stop.Latitude, stop.Longitude, string(stop.Type), stop.IsStation,
			); err != nil {
				return err
			}
			if _, err := tx.Exec(
				"INSERT INTO route_stops (route_id, stop_id, stop_order) VALUES (?, ?, ?)",
				routeID, stop.ID, order+1,
			); err != nil {
				return err
			}
			seeded = append(seeded, stop)
		}
		log.Printf("🛤️ Seeded %s (%d stops)", route.Name, len(route.Stations))
	}

	transferCount, err := seedTransfers(tx, seeded)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("✅ Seed complete: %d stops, %d routes, %d transfers",
		len(seeded), len(seedRoutes), transferCount)
	return nil
}

// seedTransfers inserts a walking transfer for every cross-line stop
// pair within 500m. Only one row is stored per pair; the graph builder
// makes the connection bidirectional.
func seedTransfers(tx *sql.Tx, stops []models.Stop) (int, error) {
	transfers := deriveTransfers(stops)
	for _, tr := range transfers {
		if _, err := tx.Exec(
			"INSERT INTO transfers (id, from_stop_id, to_stop_id, walking_distance_m, estimated_time_min) VALUES (?, ?, ?, ?, ?)",
			tr.ID, tr.FromStopID, tr.ToStopID, tr.WalkingDistanceM, tr.EstimatedTimeMin,
		); err != nil {
			return 0, err
		}
	}
	log.Printf("🚶 Derived %d walking transfers (≤%.0fm)", len(transfers), transferRadiusM)
	return len(transfers), nil
}

// deriveTransfers pairs up cross-line stops within walking range.
func deriveTransfers(stops []models.Stop) []models.Transfer {
	transfers := []models.Transfer{}
	for i := 0; i < len(stops); i++ {
		for j := i + 1; j < len(stops); j++ {
			if stops[i].Line == stops[j].Line {
				continue
			}
			distance := geo.Haversine(stops[i].Latitude, stops[i].Longitude, stops[j].Latitude, stops[j].Longitude)
			if distance > transferRadiusM {
				continue
			}

			walkTime := int(math.Round(distance / geo.WalkingSpeedMPM))
			if walkTime < 1 {
				walkTime = 1
			}
			transfers = append(transfers, models.Transfer{
				ID:               uuid.New().String(),
				FromStopID:       stops[i].ID,
				ToStopID:         stops[j].ID,
				WalkingDistanceM: distance,
				EstimatedTimeMin: walkTime,
			})
		}
	}
	return transfers
}
