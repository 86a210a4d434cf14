// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
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

// durationFlag is a flag.Value accepting the same formats as parseDuration.
type durationFlag time.Duration

func (d *durationFlag) String() string {
	return time.Duration(*d).String()
}

func (d *durationFlag) Set(s string) error {
	v, err := parseDuration(s)
	if err != nil {
		return err
	}
	*d = durationFlag(v)
	return nil
}

// optionalBool is a flag.Value that records whether it was set at all, so
// that an unset flag does not override other sources.
type optionalBool struct {
	value *bool
}

func (b *optionalBool) String() string {
	if b.value == nil {
		return ""
	}
	return strconv.FormatBool(*b.value)
}

func (b *optionalBool) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	b.value = &v
	return nil
}

func (b *optionalBool) IsBoolFlag() bool { return true }

// parseFlags parses the server configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "90d", "12h")
//	-password-hash-cost bcrypt cost
//	-password-min-length minimal password length
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-auth-rate-limit auth requests per minute per IP
//	-auth-rate-burst auth limiter burst
//	-seed seed default permissions and roles
//	-admin-username / -admin-password / -admin-name bootstrap super administrator
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress NetAddress
	var databaseDSN string
	var jsonConfigPath string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration durationFlag
	var passwordHashCost int
	var passwordMinLength int
	var requestTimeout durationFlag
	var authRateLimit, authRateBurst int
	var seed optionalBool
	var adminUsername, adminPassword, adminName string

	fs := flag.NewFlagSet("nokan-api", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.Var(&tokenDuration, "token-duration", "Token duration (e.g., 90d, 12h)")
	fs.IntVar(&passwordHashCost, "password-hash-cost", 0, "bcrypt cost")
	fs.IntVar(&passwordMinLength, "password-min-length", 0, "Minimal password length")
	fs.Var(&requestTimeout, "request-timeout", "Request timeout (e.g., 30s, 1m)")
	fs.IntVar(&authRateLimit, "auth-rate-limit", 0, "Auth requests per minute per IP")
	fs.IntVar(&authRateBurst, "auth-rate-burst", 0, "Auth limiter burst")
	fs.Var(&seed, "seed", "Seed default permissions and roles")
	fs.StringVar(&adminUsername, "admin-username", "", "Bootstrap super administrator username")
	fs.StringVar(&adminPassword, "admin-password", "", "Bootstrap super administrator password")
	fs.StringVar(&adminName, "admin-name", "", "Bootstrap super administrator name")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:      tokenSignKey,
			TokenIssuer:       tokenIssuer,
			TokenDuration:     time.Duration(tokenDuration),
			PasswordHashCost:  passwordHashCost,
			PasswordMinLength: passwordMinLength,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: time.Duration(requestTimeout),
			AuthRateLimit:  authRateLimit,
			AuthRateBurst:  authRateBurst,
		},
		Bootstrap: Bootstrap{
			Seed:          seed.value,
			AdminUsername: adminUsername,
			AdminPassword: adminPassword,
			AdminName:     adminName,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
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

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
