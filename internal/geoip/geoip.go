package geoip

import (
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/oschwald/geoip2-golang"
	"v2parser/internal/logger"
)

var (
	asnReader     *geoip2.Reader
	countryReader *geoip2.Reader
	once          sync.Once
	initErr       error
)

// ErrNotInitialized is returned by Lookup when no database was loaded.
var ErrNotInitialized = errors.New("geoip database not initialized")

// Init loads the MMDB files from specific paths. Either path may be empty.
func Init(asnPath, countryPath string) error {
	once.Do(func() {
		// 1. Load ASN DB
		if asnPath != "" {
			var err error
			asnReader, err = geoip2.Open(asnPath)
			if err != nil {
				initErr = fmt.Errorf("failed to open ASN DB at %s: %w", asnPath, err)
				return
			}
		}

		// 2. Load Country DB
		if countryPath != "" {
			var err error
			countryReader, err = geoip2.Open(countryPath)
			if err != nil {
				// Partial data is still useful
				logger.Log.Warnf("Failed to open Country DB at %s: %v. Country data will be missing.", countryPath, err)
			}
		}
	})
	return initErr
}

// Enabled reports whether any database is loaded.
func Enabled() bool {
	return asnReader != nil || countryReader != nil
}

type GeoResult struct {
	ISP     string
	Country string
}

// Lookup resolves an IP literal. Hostnames are not resolved.
func Lookup(ipStr string) (*GeoResult, error) {
	if !Enabled() {
		return nil, ErrNotInitialized
	}

	ip := net.ParseIP(ipStr)
	if ip == nil {
		return nil, fmt.Errorf("invalid ip: %s", ipStr)
	}

	res := &GeoResult{}

	// ASN Lookup
	if asnReader != nil {
		if asn, err := asnReader.ASN(ip); err == nil {
			res.ISP = asn.AutonomousSystemOrganization
		}
	}

	// Country Lookup
	if countryReader != nil {
		if c, err := countryReader.Country(ip); err == nil {
			res.Country = c.Country.IsoCode
		}
	}

	return res, nil
}

func Close() {
	if asnReader != nil {
		asnReader.Close()
	}
	if countryReader != nil {
		countryReader.Close()
	}
}
