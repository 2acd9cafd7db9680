package config

// applyDefaults fills in the documented defaults for fields left unset by
// every configuration source.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = ":8989"
	}

	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = "./user.db"
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = "userd"
	}

	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}

	if cfg.App.PasswordHashAlg == "" {
		cfg.App.PasswordHashAlg = HashAlgHMAC
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Secrets have no defaults: both keys must be injected through one of the
// configuration sources.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrMissingTokenSignKey
	}

	if cfg.App.PasswordHashAlg == HashAlgHMAC && cfg.App.PasswordHashKey == "" {
		return ErrMissingPasswordHashKey
	}

	if cfg.App.PasswordHashAlg != HashAlgHMAC && cfg.App.PasswordHashAlg != HashAlgBcrypt {
		return ErrUnknownHashAlgorithm
	}

	return nil
}
