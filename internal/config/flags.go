package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-p/-port listening port (shorthand for -a with an empty host)
//	-d database DSN or store file path
//	-c/-config json file path with configs
//	-password-hash-key password hash key
//	-password-hash-alg password hash algorithm (hmac-sha256, bcrypt)
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-session-cache enable the server-side session cache
//	-request-timeout request timeout (e.g., "30s", "1m")
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var port int
	var databaseDSN string
	var jsonConfigPath string
	var passwordHashKey string
	var passwordHashAlg string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var sessionCache bool
	var requestTimeout time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.IntVar(&port, "p", 0, "Listening port")
	flag.IntVar(&port, "port", 0, "Listening port (alias)")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN or store file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&passwordHashKey, "password-hash-key", "", "Password hash key")
	flag.StringVar(&passwordHashAlg, "password-hash-alg", "", "Password hash algorithm")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration")
	flag.BoolVar(&sessionCache, "session-cache", false, "Enable server-side session cache")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout")

	flag.Parse()

	// -p/-port is a convenience alias kept from the original CLI; an
	// explicit -a wins.
	if serverAddress.Port == 0 && port != 0 {
		serverAddress.Port = port
	}

	return &StructuredConfig{
		App: App{
			PasswordHashKey: passwordHashKey,
			PasswordHashAlg: passwordHashAlg,
			TokenSignKey:    tokenSignKey,
			TokenIssuer:     tokenIssuer,
			TokenDuration:   tokenDuration,
			SessionCache:    sessionCache,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns the empty string so mergo
// treats the field as unset.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "" && host != "localhost" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
