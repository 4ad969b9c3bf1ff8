package model

// Protocol is the transport protocol of a port definition. The set is open;
// the constants cover the values used by the seed data.
type Protocol string

const (
	ProtocolTCP Protocol = "TCP"
	ProtocolUDP Protocol = "UDP"
)

// Port is a named network port definition. Number is unique across all
// stored ports.
type Port struct {
	ID       int64
	Name     string
	Number   int
	Protocol Protocol
}

// DefaultPorts returns the well-known ports inserted into an empty store at
// startup.
func DefaultPorts() []Port {
	return []Port{
		{Name: "HTTP", Number: 80, Protocol: ProtocolTCP},
		{Name: "HTTPS", Number: 443, Protocol: ProtocolTCP},
		{Name: "FTP", Number: 21, Protocol: ProtocolTCP},
		{Name: "SSH", Number: 22, Protocol: ProtocolTCP},
		{Name: "DNS", Number: 53, Protocol: ProtocolUDP},
		{Name: "SMTP", Number: 25, Protocol: ProtocolTCP},
		{Name: "POP3", Number: 110, Protocol: ProtocolTCP},
		{Name: "IMAP", Number: 143, Protocol: ProtocolTCP},
	}
}
