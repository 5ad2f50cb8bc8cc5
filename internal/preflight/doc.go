// Package preflight provides the local readiness checks behind `ytdl gate`
// and the environment report behind `ytdl doctor`.
//
// Gate checks are offline and side-effect free: each external tool is
// resolved on PATH and asked for its version under a timeout, and the output
// directory is checked for write access (or, when missing, whether it could
// be created). Doctor is informational and exits zero regardless.
package preflight
