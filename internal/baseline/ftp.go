package baseline

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jlaffaye/ftp"
	"github.com/rs/zerolog/log"

	"github.com/harsahib2907/climate-policy-simulator/internal/sim"
)

const (
	defaultFTPHost      = "ftp.environment.gov.example:21"
	defaultInventoryPath = "/pub/inventory/national_baseline.xml"
)

// FTPProvider fetches the national inventory XML published on an
// open-data FTP endpoint. Transient FTP failures are retried with
// exponential backoff; a fetch that never succeeds surfaces as
// DataUnavailable.
type FTPProvider struct {
	host string
	path string
}

func NewFTPProvider(host, path string) *FTPProvider {
	if host == "" {
		host = defaultFTPHost
	}
	if path == "" {
		path = defaultInventoryPath
	}
	return &FTPProvider{host: host, path: path}
}

type inventoryDoc struct {
	XMLName    xml.Name             `xml:"inventory"`
	BaseYear   int                  `xml:"base-year"`
	Indicators []inventoryIndicator `xml:"indicator"`
}

type inventoryIndicator struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

func (p *FTPProvider) Load() (sim.Baseline, error) {
	var body []byte

	operation := func() error {
		conn, err := ftp.Dial(p.host, ftp.DialWithTimeout(30*time.Second))
		if err != nil {
			return fmt.Errorf("ftp dial: %w", err)
		}
		defer conn.Quit()

		if err := conn.Login("anonymous", "anonymous"); err != nil {
			return fmt.Errorf("ftp login: %w", err)
		}

		resp, err := conn.Retr(p.path)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("ftp retr %s: %w", p.path, err))
		}
		defer resp.Close()

		body, err = io.ReadAll(resp)
		if err != nil {
			return fmt.Errorf("ftp read: %w", err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 2 * time.Minute
	if err := backoff.Retry(operation, bo); err != nil {
		return sim.Baseline{}, &sim.Error{Kind: sim.KindDataUnavailable, Message: "fetch inventory: " + err.Error()}
	}

	b, err := parseInventory(body)
	if err != nil {
		return sim.Baseline{}, err
	}

	log.Info().Str("host", p.host).Int("base_year", b.BaseYear).Msg("loaded baseline from inventory")
	return b, nil
}

func parseInventory(body []byte) (sim.Baseline, error) {
	var doc inventoryDoc
	if err := xml.Unmarshal(body, &doc); err != nil {
		return sim.Baseline{}, &sim.Error{Kind: sim.KindDataUnavailable, Message: "parse inventory: " + err.Error()}
	}

	b := sim.Baseline{BaseYear: doc.BaseYear}
	seen := map[string]bool{}
	for _, ind := range doc.Indicators {
		v, err := strconv.ParseFloat(ind.Value, 64)
		if err != nil {
			return sim.Baseline{}, &sim.Error{Kind: sim.KindDataUnavailable, Message: fmt.Sprintf("indicator %s: bad value %q", ind.Name, ind.Value)}
		}
		seen[ind.Name] = true
		switch ind.Name {
		case "emissions_tons":
			b.BaseYearEmissionsTons = v
		case "vehicle_count":
			b.BaseVehicleCount = int64(v)
		case "renewable_share":
			b.BaseRenewableShare = v
		case "forest_cover_units":
			b.BaseForestCoverUnits = v
		case "industrial_output_index":
			b.BaseIndustrialOutputIdx = v
		default:
			// Unknown indicators are fine; the inventory carries more
			// than we consume.
		}
	}

	for _, required := range []string{"emissions_tons", "renewable_share"} {
		if !seen[required] {
			return sim.Baseline{}, &sim.Error{Kind: sim.KindDataUnavailable, Message: "inventory missing indicator " + required}
		}
	}

	if err := b.Validate(); err != nil {
		return sim.Baseline{}, err
	}
	return b, nil
}
