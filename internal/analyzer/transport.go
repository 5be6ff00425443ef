package analyzer

import (
	"net/url"
	"strings"
)

// dangerousPorts are well-known non-web services. Phishing kits sometimes
// host panels behind them to dodge web-only scanners.
var dangerousPorts = map[string]bool{
	"21":   true, // ftp
	"22":   true, // ssh
	"23":   true, // telnet
	"25":   true, // smtp
	"135":  true, // msrpc
	"139":  true, // netbios
	"445":  true, // smb
	"1433": true, // mssql
	"3306": true, // mysql
	"3389": true, // rdp
}

// containsHTTPReference reports whether a query string embeds a plain HTTP
// URL, typically a redirect or resource parameter.
func containsHTTPReference(query string) bool {
	if query == "" {
		return false
	}
	if strings.Contains(query, "http://") {
		return true
	}
	// Redirect parameters are frequently percent-encoded.
	if decoded, err := url.QueryUnescape(query); err == nil {
		return strings.Contains(decoded, "http://")
	}
	return false
}

// hasSSLDisabledFlag reports whether the query explicitly turns TLS off.
func hasSSLDisabledFlag(query string) bool {
	values, err := url.ParseQuery(query)
	if err != nil {
		return false
	}
	for _, key := range []string{"ssl", "secure", "tls"} {
		for _, v := range values[key] {
			switch strings.ToLower(v) {
			case "false", "0", "off", "no":
				return true
			}
		}
	}
	return false
}
