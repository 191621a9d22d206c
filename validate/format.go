package validate

import (
	"encoding/base64"
	"encoding/json"
	"net/mail"
	"net/netip"
	"net/url"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/viljami/malli/model"
)

var timeLayouts = []string{
	"15:04:05.999999999Z07:00",
	"15:04:05.999999999",
}

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

func validateFormat(format model.Format, c *model.Constraints, v any, path []string) (any, error) {
	// Binary and duration are the only formats that accept non-string
	// input.
	switch format {
	case model.FormatBinary:
		b, ok := v.([]byte)
		if !ok {
			return nil, errorf(path, `expected a byte sequence, got %T`, v)
		}
		return b, nil

	case model.FormatDuration:
		return validateDuration(v, path)
	}

	s, ok := v.(string)
	if !ok {
		return nil, errorf(path, `expected a string, got %T`, v)
	}

	switch format {
	case model.FormatBase64:
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, errorf(path, `invalid base64 value: %s`, err)
		}
		return b, nil

	case model.FormatDate:
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, errorf(path, `invalid date "%s"`, s)
		}
		return d, nil

	case model.FormatTime:
		for _, layout := range timeLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, nil
			}
		}
		return nil, errorf(path, `invalid time "%s"`, s)

	case model.FormatDateTime:
		for _, layout := range dateTimeLayouts {
			if d, err := time.Parse(layout, s); err == nil {
				return d, nil
			}
		}
		return nil, errorf(path, `invalid timestamp "%s"`, s)

	case model.FormatEmail:
		addr, err := mail.ParseAddress(s)
		if err != nil {
			return nil, errorf(path, `invalid email address "%s"`, s)
		}
		return addr.Address, nil

	case model.FormatIPv4:
		addr, err := netip.ParseAddr(s)
		if err != nil || !addr.Is4() {
			return nil, errorf(path, `invalid IPv4 address "%s"`, s)
		}
		return addr, nil

	case model.FormatIPv6:
		addr, err := netip.ParseAddr(s)
		if err != nil || addr.Is4() {
			return nil, errorf(path, `invalid IPv6 address "%s"`, s)
		}
		return addr, nil

	case model.FormatIPAnyAddress:
		addr, err := netip.ParseAddr(s)
		if err != nil {
			return nil, errorf(path, `invalid IP address "%s"`, s)
		}
		return addr, nil

	case model.FormatIPInterface:
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return nil, errorf(path, `invalid IP interface "%s"`, s)
		}
		return prefix, nil

	case model.FormatIPNetwork:
		prefix, err := netip.ParsePrefix(s)
		if err != nil || prefix.Masked() != prefix {
			return nil, errorf(path, `invalid IP network "%s"`, s)
		}
		return prefix, nil

	case model.FormatJSONString:
		if !json.Valid([]byte(s)) {
			return nil, errorf(path, `value is not a valid JSON document`)
		}
		return json.RawMessage(s), nil

	case model.FormatMultiHostURI:
		return validateDsn(s, path)

	case model.FormatPassword:
		return model.Secret(s), nil

	case model.FormatSecretBytes:
		return model.SecretBytes(s), nil

	case model.FormatURI:
		return validateURL(s, c, path)

	case model.FormatHTTPURI:
		u, err := parseURL(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			return nil, errorf(path, `invalid http URL "%s"`, s)
		}
		return u, nil

	case model.FormatFileURI:
		u, err := parseURL(s)
		if err != nil || u.Scheme != "file" {
			return nil, errorf(path, `invalid file URL "%s"`, s)
		}
		return u, nil

	case model.FormatPath:
		if s == "" {
			return nil, errorf(path, `path must not be empty`)
		}
		return s, nil

	case model.FormatFilePath:
		info, err := os.Stat(s)
		if err != nil || info.IsDir() {
			return nil, errorf(path, `"%s" is not an existing file`, s)
		}
		return s, nil

	case model.FormatDirectoryPath:
		info, err := os.Stat(s)
		if err != nil || !info.IsDir() {
			return nil, errorf(path, `"%s" is not an existing directory`, s)
		}
		return s, nil

	case model.FormatUUID:
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, errorf(path, `invalid UUID "%s"`, s)
		}
		return id, nil

	case model.FormatUUID1, model.FormatUUID3, model.FormatUUID4, model.FormatUUID5:
		return validateUUIDVersion(format, s, path)
	}

	return nil, errorf(path, `unknown format "%s"`, format)
}

func validateDuration(v any, path []string) (any, error) {
	switch v := v.(type) {
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errorf(path, `invalid duration "%s"`, v)
		}
		return d, nil

	case int, int32, int64, float32, float64:
		f, _ := floatValue(v)
		return time.Duration(f * float64(time.Second)), nil
	}

	return nil, errorf(path, `expected a duration, got %T`, v)
}

// validateDsn accepts Postgres-style connection strings, including the
// multi-host form pgconn understands natively, and Mongo-style
// mongodb:// and mongodb+srv:// URIs.
func validateDsn(s string, path []string) (any, error) {
	if _, err := pgconn.ParseConfig(s); err == nil {
		return s, nil
	}

	if u, err := url.Parse(s); err == nil {
		if u.Scheme == "mongodb" || u.Scheme == "mongodb+srv" {
			return s, nil
		}
	}

	return nil, errorf(path, `"%s" is not a valid PostgreSQL or MongoDB connection string`, s)
}

func validateURL(s string, c *model.Constraints, path []string) (any, error) {
	u, err := parseURL(s)
	if err != nil {
		return nil, errorf(path, `invalid URL "%s"`, s)
	}

	if c != nil && len(c.AllowedSchemes) > 0 && !slices.Contains(c.AllowedSchemes, u.Scheme) {
		return nil, errorf(path, `URL scheme "%s" is not one of the allowed schemes %v`, u.Scheme, c.AllowedSchemes)
	}

	return u, nil
}

func parseURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}

	if u.Scheme == "" {
		return nil, errorf(nil, `missing URL scheme`)
	}

	return u, nil
}

func validateUUIDVersion(format model.Format, s string, path []string) (any, error) {
	versions := map[model.Format]uuid.Version{
		model.FormatUUID1: 1,
		model.FormatUUID3: 3,
		model.FormatUUID4: 4,
		model.FormatUUID5: 5,
	}

	id, err := uuid.Parse(s)
	if err != nil || id.Version() != versions[format] {
		return nil, errorf(path, `invalid %s value "%s"`, format, s)
	}

	return id, nil
}
