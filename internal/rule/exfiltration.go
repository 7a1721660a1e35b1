package rule

// exfiltrationRules matches commands that read a secret path and move its
// contents somewhere outside the local filesystem — network upload, DNS
// lookup with embedded data, or a clipboard/paste-bin style sink. Most
// entries conjoin a verb with a secret-path fragment written inline in the
// pattern itself; nothing is shared with the tables in secrets.go.
var exfiltrationRules = compile([]entry{
	{
		id:        "exfil-cat-ssh-key",
		category:  CategoryExfiltration,
		severity:  Critical,
		pattern:   `\bcat\b[^|;&]*\.ssh/id_(rsa|dsa|ecdsa|ed25519)\b`,
		message:   "reading an SSH private key to standard output",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-base64-ssh-key",
		category:  CategoryExfiltration,
		severity:  Critical,
		pattern:   `\bbase64\b[^|;&]*\.ssh/id_(rsa|dsa|ecdsa|ed25519)\b`,
		message:   "base64-encoding an SSH private key, typical of exfil staging",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-copy-ssh-key",
		category:  CategoryExfiltration,
		severity:  Critical,
		pattern:   `\bcp\b[^|;&]*\.ssh/id_(rsa|dsa|ecdsa|ed25519)\b[^|;&]*\s(/tmp|/var/tmp|\.\.?/)`,
		message:   "copying an SSH private key out of its protected location",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-cat-dotenv-pipe",
		category:  CategoryExfiltration,
		severity:  Critical,
		pattern:   `\bcat\b[^|;&]*\.env\b[^|;&]*\|\s*(curl|wget|nc|ncat|ssh)\b`,
		message:   "piping .env contents into a network tool",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-curl-upload-file",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bcurl\b[^|;&]*(-F\s*['"]?@|--data-binary\s*@|--upload-file\b|-T\s)`,
		message:   "curl uploading local file contents to a remote host",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-wget-post-file",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bwget\b[^|;&]*--post-file\b`,
		message:   "wget posting local file contents to a remote host",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-scp-out",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bscp\b[^|;&]*\.(env|pem|key|p12)\b[^|;&]*:`,
		message:   "scp copying a secret-bearing file to a remote host",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-rsync-out",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\brsync\b[^|;&]*(\.ssh|\.aws|\.env)[^|;&]*\s\S+:`,
		message:   "rsync shipping a credential directory to a remote host",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-nc-pipe",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bcat\b[^|;&]*\|\s*(nc|ncat|netcat)\b`,
		message:   "piping file contents into netcat",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-aws-s3-cp-secret",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\baws\s+s3\s+cp\b[^|;&]*(\.ssh|\.aws|\.env|credentials\.json)`,
		message:   "aws s3 cp uploading a secret-bearing path",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-tar-secrets",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\btar\b[^|;&]*(-c|--create)[^|;&]*(\.ssh|\.aws|\.gnupg)\b`,
		message:   "archiving a credential directory, typically staged for exfil",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-dns-lookup-data",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\b(nslookup|dig)\s+\S*\$\(`,
		message:   "DNS lookup whose hostname is built from a command substitution — DNS exfiltration idiom",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-gist-create",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bgh\s+gist\s+create\b[^|;&]*(\.ssh|\.aws|\.env|credentials)`,
		message:   "publishing a secret-bearing file as a public gist",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-curl-kube-config",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bcurl\b[^|;&]*--data\S*\s*@[^|;&]*\.kube/config\b`,
		message:   "uploading a kubeconfig via curl",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-env-to-webhook",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\benv\b[^|;&]*\|\s*curl\b[^|;&]*-X\s*POST\b`,
		message:   "piping the process environment to an HTTP POST",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-printenv-pipe",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bprintenv\b[^|;&]*\|\s*(curl|wget|nc|ncat)\b`,
		message:   "piping environment variables into a network tool",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-xclip-secret",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\b(xclip|pbcopy)\b[^|;&]*(\.ssh|\.aws|\.env|credentials)`,
		message:   "copying secret-bearing content to the system clipboard",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-ssh-remote-forward",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bssh\b[^|;&]*-R\s+\d+:`,
		message:   "ssh remote port forward — can tunnel local data outward",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-curl-credentials-json",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bcurl\b[^|;&]*--data\S*\s*@[^|;&]*credentials\.json\b`,
		message:   "uploading credentials.json via curl",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-pastebin-post",
		category:  CategoryExfiltration,
		severity:  High,
		pattern:   `\bcurl\b[^|;&]*(pastebin\.com|hastebin\.com|transfer\.sh|termbin\.com)`,
		message:   "uploading content to a public paste service",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-openssl-base64-encrypt",
		category:  CategoryExfiltration,
		severity:  Strict,
		pattern:   `\bopenssl\s+(enc|base64)\b[^|;&]*-in\b[^|;&]*(\.ssh|\.env|\.aws)`,
		message:   "encoding/encrypting a credential file, typically a staging step before exfil",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-find-secrets-copy-out",
		category:  CategoryExfiltration,
		severity:  Strict,
		pattern:   `\bfind\b[^|;&]*-name\s+['"]?(id_rsa|\.env|credentials\.json)['"]?[^|;&]*-exec\s+(cp|scp|curl)\b`,
		message:   "bulk search for credential files followed by a copy/upload action",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-git-remote-add-unknown",
		category:  CategoryExfiltration,
		severity:  Strict,
		pattern:   `\bgit\s+remote\s+add\b[^|;&]*\s\S+@\S+:`,
		message:   "adding an additional git remote — can be used to push history to an unexpected host",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "exfil-telegram-webhook",
		category:  CategoryExfiltration,
		severity:  Strict,
		pattern:   `\bcurl\b[^|;&]*api\.telegram\.org[^|;&]*-F\b`,
		message:   "uploading file content via a Telegram bot webhook",
		toolScope: ScopeShell,
		regexSafe: true,
	},
})
