package rule

// dangerousRules is the dangerous-command table: commands that destroy data,
// escalate privilege, escape containment, or establish persistence/backdoors.
// Patterns match against the normalized command text (see shellanalyzer).
var dangerousRules = compile([]entry{
	{
		id:        "rm-root",
		category:  CategoryDangerous,
		severity:  Critical,
		pattern:   `\brm\b[^|;&]*\s(-[a-zA-Z]*[rRf][a-zA-Z]*\s+)?(/|~|\$HOME|/etc|/usr|/var|/boot)(\s|/|$)`,
		message:   "recursive removal targeting root, home, or a system directory",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "dd-to-device",
		category:  CategoryDangerous,
		severity:  Critical,
		pattern:   `\bdd\b[^|;&]*\bof=/dev/`,
		message:   "dd writing directly to a block device",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "mkfs-device",
		category:  CategoryDangerous,
		severity:  Critical,
		pattern:   `\bmkfs(\.\w+)?\s+/dev/`,
		message:   "filesystem creation on a raw device",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "fdisk-device",
		category:  CategoryDangerous,
		severity:  Critical,
		pattern:   `\b(fdisk|parted|sgdisk)\b\s+/dev/`,
		message:   "partition table edit on a raw device",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "fork-bomb",
		category:  CategoryDangerous,
		severity:  Critical,
		pattern:   `:\(\)\s*\{\s*:\s*\|\s*:\s*&\s*\}\s*;\s*:`,
		message:   "fork bomb idiom",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "diskutil-erase",
		category:  CategoryDangerous,
		severity:  Critical,
		pattern:   `\bdiskutil\s+(erase(disk|volume)|secureerase)|apfs\s+erase`,
		message:   "disk erase/format on macOS",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "pipe-to-shell",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\b(curl|wget)\b[^|]*\|\s*(sudo\s+)?(sh|bash|zsh|python3?|perl|node)\b`,
		message:   "network fetch piped into a shell or scripting interpreter",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "force-push-main",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bgit\s+push\b[^|;&]*(-f\b|--force(-with-lease)?\b)[^|;&]*\b(origin\s+)?(refs/heads/)?(main|master)\b`,
		message:   "force push targeting main or master",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "hard-reset",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bgit\s+reset\s+--hard\b`,
		message:   "git reset --hard discards working-tree changes",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "world-writable",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bchmod\b[^|;&]*(-R\s+)?\d*(777|666)\b|\bchmod\b[^|;&]*\ba\+\w*w`,
		message:   "chmod grants world-write permission",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "chown-recursive-root",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bchown\s+(-R|--recursive)\b[^|;&]*\s(/|/etc|/usr|/var)(\s|$)`,
		message:   "recursive chown targeting root or a system directory",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "reverse-shell",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bbash\s+-i\b[^|;&]*>\s*/dev/tcp/|\bnc\b[^|;&]*-e\s+\S*sh\b`,
		message:   "reverse shell pattern",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "container-escape",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bdocker\s+run\b[^|;&]*(--privileged\b|-v\s+/:(/\S*)?|--volume\s+/:(/\S*)?)`,
		message:   "docker run with --privileged or a bind mount of /",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "interpreter-inline-dangerous",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\b(bash|sh|zsh|python3?|node|perl)\s+-[a-z]*[ce]\b.*(\brm\s+-rf\b|\bdd\s+if=|curl\b.*\|\s*sh)`,
		message:   "inline interpreter invocation whose argument text itself contains a dangerous operation",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "eval-dynamic",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\beval\s+["']?\$(\(|\{|\w)`,
		message:   "eval whose argument is a variable or substitution",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "kubectl-delete-resource",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bkubectl\s+delete\s+(deploy(ment)?|svc|service|statefulset|namespace|ns|pvc|secret|configmap|cm)\b`,
		message:   "kubectl delete of a persistent (non-pod) resource",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "kubectl-exec-apply",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bkubectl\s+(apply|patch|edit|exec|scale|rollout|replace)\b`,
		message:   "kubectl write/exec operation against a live cluster",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "crontab-write",
		category:  CategoryDangerous,
		severity:  Strict,
		pattern:   `\|\s*crontab\s+-|^\s*crontab\s+-[^l]`,
		message:   "writing a new crontab — establishes a persistence mechanism",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "xargs-exec",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bxargs\b[^|;&]*\b(sh|bash|zsh|python3?|perl)\b`,
		message:   "xargs invoking a shell or scripting interpreter",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "find-exec-shell",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bfind\b[^|;&]*-exec\b[^|;&]*\b(sh|bash|rm)\b`,
		message:   "find -exec invoking a shell or rm",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "systemctl-service-control",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bsystemctl\s+(stop|disable|mask)\b|\blaunchctl\s+(unload|bootout)\b`,
		message:   "stopping or disabling a system service",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "drop-database",
		category:  CategoryDangerous,
		severity:  Strict,
		pattern:   `(?i)\bdrop\s+(database|table|schema)\b`,
		message:   "SQL DROP statement",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "truncate-database",
		category:  CategoryDangerous,
		severity:  Strict,
		pattern:   `(?i)\btruncate\s+table\b`,
		message:   "SQL TRUNCATE statement",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "any-force-push",
		category:  CategoryDangerous,
		severity:  Strict,
		pattern:   `\bgit\s+push\b[^|;&]*(-f\b|--force(-with-lease)?\b)`,
		message:   "any force push",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "sudo-rm",
		category:  CategoryDangerous,
		severity:  Strict,
		pattern:   `\bsudo\s+(\S+\s+)*rm\b`,
		message:   "sudo rm — elevated deletion",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "prune",
		category:  CategoryDangerous,
		severity:  Strict,
		pattern:   `\bdocker\s+(system\s+)?prune\b|\bgit\s+gc\s+--aggressive\b|\bgit\s+prune\b`,
		message:   "bulk prune operation",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "sudo-anything",
		category:  CategoryDangerous,
		severity:  Strict,
		pattern:   `^\s*sudo\b`,
		message:   "sudo invocation",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "dd-anywhere",
		category:  CategoryDangerous,
		severity:  Strict,
		pattern:   `^\s*dd\s+`,
		message:   "dd disk operation",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "shutdown-now",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bshutdown\s+-[hr]\s+now\b|\breboot\b`,
		message:   "immediate shutdown or reboot",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "nvram-clear",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bnvram\s+-c\b`,
		message:   "clearing NVRAM/EFI variables",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "gatekeeper-disable",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bspctl\b[^|;&]*--master-disable\b|\bcsrutil\s+disable\b`,
		message:   "disabling macOS Gatekeeper or SIP",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "iptables-flush",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\biptables\s+(-F|--flush)\b|\bufw\s+disable\b`,
		message:   "flushing firewall rules or disabling the firewall",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "npm-publish",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\b(npm|yarn|pnpm)\s+publish\b|\bcargo\s+publish\b`,
		message:   "publishing a package to a public registry",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "gh-repo-delete",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bgh\s+repo\s+delete\b`,
		message:   "deleting a GitHub repository",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "gh-repo-publicize",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bgh\s+repo\s+edit\b[^|;&]*--visibility[= ]public\b`,
		message:   "changing repository visibility to public",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "aws-write",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\baws\s+\S+\s+(create|delete|update|put|run)-\S+`,
		message:   "AWS CLI write operation",
		toolScope: ScopeShell,
		regexSafe: true,
	},
	{
		id:        "gcloud-write",
		category:  CategoryDangerous,
		severity:  High,
		pattern:   `\bgcloud\b[^|;&]*\b(create|delete|update|deploy|ssh)\b`,
		message:   "gcloud write operation",
		toolScope: ScopeShell,
		regexSafe: true,
	},
})
