package store

// Reserved fast-tier keys. The settings namespace is per-feature
// ("settings.<feature>"); the rest are session/cart bookkeeping written by the
// register UI and cleared during RAZ.
const (
	KeyCachedInvoices       = "cachedInvoices"
	KeyLastSyncTime         = "lastSyncTime"
	KeyProcessedInvoicesIDs = "processedInvoicesIds"
	KeyPendingChecks        = "pendingChecks"

	KeyCurrentCart    = "currentCart"
	KeyCurrentVendor  = "currentVendor"
	KeyPendingSales   = "pendingSales"
	KeySessionState   = "sessionState"
	KeyVendorSession  = "vendorSession"

	// KeyMigrationDone gates the one-time legacy migration.
	KeyMigrationDone = "storage-migration-done"
)

// InvoiceKeys are the external-invoice / pending-payment bookkeeping keys,
// cleared both by the full RAZ and by the narrower pending-checks reset.
func InvoiceKeys() []string {
	return []string{KeyCachedInvoices, KeyLastSyncTime, KeyProcessedInvoicesIDs, KeyPendingChecks}
}

// SessionKeys are the cart/sales/vendor bookkeeping keys removed by RAZ.
func SessionKeys() []string {
	return []string{KeyCurrentCart, KeyCurrentVendor, KeyPendingSales, KeySessionState, KeyVendorSession}
}
