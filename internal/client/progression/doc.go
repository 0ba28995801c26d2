// Package progression tracks experience points, levels and daily streaks
// for the single local installation, and emits short-lived "xp awarded"
// toasts as a side effect.
//
// # State
//
// The Engine keeps one models.GamificationState in memory and mirrors it to
// the key-value store under common.KeyProgressionState. Every award is a
// read-modify-write under one mutex, so concurrent awards always compute
// streak and level from the state the previous award left behind. The write
// to storage happens after the mutex is released; a failed write is logged
// and reported in AwardResult.PersistErr but never rolls the state back.
//
// # Streaks
//
// Calendar days are compared in the Clock's location. Awarding on the same
// day keeps the streak, on the next day increments it, and after any gap
// (or when the stored date lies in the future) restarts it at 1. On Hydrate
// a streak whose last day is neither today nor yesterday is shown as 0.
//
// # Toasts
//
// Each award pushes a models.Toast onto a ToastQueue. Toasts disappear after
// the configured TTL or on DismissToast, whichever comes first.
package progression
