// Package registry looks up domain registration data over WHOIS. The
// creation date feeds the domain age features; freshly registered
// domains are a strong phishing signal because campaigns burn through
// throwaway registrations.
package registry
