package domain

import "github.com/google/uuid"

// Geradores de id. O prefixo identifica o tipo do registro no JSON
// exportado; o sufixo UUID garante unicidade.

func NewProviderID() string { return "provider-" + uuid.NewString() }

func NewContactID() string { return "contact-" + uuid.NewString() }

func NewEmailID() string { return "email-" + uuid.NewString() }

func NewServiceRecordID() string { return "service-" + uuid.NewString() }
