package rule

// secretPathRules is the protected-path table. Each pattern matches either a
// path payload (Read/Edit/Write) or a shell command that names the path
// directly as a plain argument (e.g. "cat .env"), per ScopeBoth. Patterns
// anchor like a path (^|/)...$, so shellanalyzer matches them against each
// word of the command individually rather than the whole line; pathanalyzer
// matches them against the normalized path and its base name.
var secretPathRules = compile([]entry{
	{
		id:        "secret-dotenv",
		category:  CategorySecret,
		severity:  Critical,
		pattern:   `(^|/)\.env(\.local|\.production)?$`,
		message:   "environment file carrying runtime secrets",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-ssh-key",
		category:  CategorySecret,
		severity:  Critical,
		pattern:   `(^|/)\.ssh/id_(rsa|dsa|ecdsa|ed25519)$`,
		message:   "SSH private key",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-aws-credentials",
		category:  CategorySecret,
		severity:  Critical,
		pattern:   `(^|/)\.aws/credentials$`,
		message:   "AWS credentials file",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-kube-config",
		category:  CategorySecret,
		severity:  Critical,
		pattern:   `(^|/)\.kube/config$`,
		message:   "kubeconfig carrying cluster credentials",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-pem-key",
		category:  CategorySecret,
		severity:  Critical,
		pattern:   `\.pem$`,
		message:   "PEM-encoded key or certificate",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-private-key-ext",
		category:  CategorySecret,
		severity:  Critical,
		pattern:   `\.key$`,
		message:   "private key file",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-pkcs12",
		category:  CategorySecret,
		severity:  Critical,
		pattern:   `\.p12$`,
		message:   "PKCS#12 keystore",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-credentials-json",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)credentials\.json$`,
		message:   "credentials.json — typically a service-account or OAuth credential bundle",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-secrets-json",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)secrets\.json$`,
		message:   "secrets.json",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-docker-config",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.docker/config\.json$`,
		message:   "docker config carrying registry credentials",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-netrc",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.netrc$`,
		message:   ".netrc — plaintext host credentials",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-npmrc",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.npmrc$`,
		message:   ".npmrc may carry a registry auth token",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-pypirc",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.pypirc$`,
		message:   ".pypirc carries PyPI upload credentials",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-pgpass",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.pgpass$`,
		message:   ".pgpass carries PostgreSQL credentials",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-my-cnf",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.my\.cnf$`,
		message:   ".my.cnf may carry MySQL credentials",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-gcp-application-default",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)application_default_credentials\.json$|(^|/)gcloud/legacy_credentials/`,
		message:   "GCP application-default or legacy credentials",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-azure-tokens",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.azure/(accessTokens|azureProfile)\.json$`,
		message:   "Azure CLI cached tokens",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-github-hosts",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.config/gh/hosts\.yml$`,
		message:   "GitHub CLI stored token",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-gnupg",
		category:  CategorySecret,
		severity:  High,
		pattern:   `(^|/)\.gnupg/(secring\.gpg|private-keys-v1\.d)`,
		message:   "GPG private keyring",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-generic-config",
		category:  CategorySecret,
		severity:  Strict,
		pattern:   `(^|/)config\.json$`,
		message:   "generic config.json — may carry application secrets",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-settings-yaml",
		category:  CategorySecret,
		severity:  Strict,
		pattern:   `(^|/)settings\.ya?ml$`,
		message:   "generic settings file — may carry application secrets",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-htpasswd",
		category:  CategorySecret,
		severity:  Strict,
		pattern:   `(^|/)\.htpasswd$`,
		message:   "htpasswd credential store",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-etc-shadow",
		category:  CategorySecret,
		severity:  Strict,
		pattern:   `^/etc/shadow$`,
		message:   "system password hash file",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
	{
		id:        "secret-etc-passwd",
		category:  CategorySecret,
		severity:  Strict,
		pattern:   `^/etc/passwd$`,
		message:   "system account database",
		toolScope: ScopeBoth,
		regexSafe: true,
	},
})
