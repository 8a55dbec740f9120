// FILE: logsink/src/internal/tls/generator.go
package tls

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"flag"
	"fmt"
	"io"
	"math/big"
	"net"
	"os"
	"strings"
	"time"
)

// CertGeneratorCommand provisions the local self-signed certificate the
// file server collaborator needs.
type CertGeneratorCommand struct {
	output io.Writer
	errOut io.Writer
}

func NewCertGeneratorCommand() *CertGeneratorCommand {
	return &CertGeneratorCommand{
		output: os.Stdout,
		errOut: os.Stderr,
	}
}

func (cg *CertGeneratorCommand) Execute(args []string) error {
	cmd := flag.NewFlagSet("tls", flag.ContinueOnError)
	cmd.SetOutput(cg.errOut)

	var (
		commonName = cmd.String("cn", "localhost", "Common name")
		org        = cmd.String("org", "logsink", "Organization")
		country    = cmd.String("country", "US", "Country code")
		validDays  = cmd.Int("days", 365, "Validity period in days")
		keySize    = cmd.Int("bits", 2048, "RSA key size")
		hosts      = cmd.String("hosts", "localhost,127.0.0.1", "Comma-separated hostnames/IPs for the SAN list")
		certOut    = cmd.String("cert-out", "server.crt", "Output certificate file")
		keyOut     = cmd.String("key-out", "server.key", "Output key file")
	)

	cmd.Usage = func() {
		fmt.Fprintln(cg.errOut, "Generate a self-signed TLS certificate for the logsink file server")
		fmt.Fprintln(cg.errOut, "\nUsage: logsink tls [options]")
		fmt.Fprintln(cg.errOut, "\nExample:")
		fmt.Fprintln(cg.errOut, "  logsink tls --cn localhost --hosts localhost,127.0.0.1,192.168.1.50")
		fmt.Fprintln(cg.errOut, "\nOptions:")
		cmd.PrintDefaults()
		fmt.Fprintln(cg.errOut)
	}

	if err := cmd.Parse(args); err != nil {
		return err
	}

	return cg.generateSelfSigned(*commonName, *org, *country, *hosts, *validDays, *keySize, *certOut, *keyOut)
}

func parseHosts(hostList string) ([]string, []net.IP) {
	var dnsNames []string
	var ipAddrs []net.IP

	if hostList == "" {
		return dnsNames, ipAddrs
	}

	for _, h := range strings.Split(hostList, ",") {
		h = strings.TrimSpace(h)
		if ip := net.ParseIP(h); ip != nil {
			ipAddrs = append(ipAddrs, ip)
		} else if h != "" {
			dnsNames = append(dnsNames, h)
		}
	}

	return dnsNames, ipAddrs
}

func (cg *CertGeneratorCommand) generateSelfSigned(cn, org, country, hosts string, days, bits int, certFile, keyFile string) error {
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("failed to generate private key: %w", err)
	}

	dnsNames, ipAddrs := parseHosts(hosts)

	serialNumber, _ := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	template := x509.Certificate{
		SerialNumber: serialNumber,
		Subject: pkix.Name{
			CommonName:   cn,
			Organization: []string{org},
			Country:      []string{country},
		},
		NotBefore: time.Now(),
		NotAfter:  time.Now().AddDate(0, 0, days),

		KeyUsage:    x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		IsCA:        false,

		DNSNames:    dnsNames,
		IPAddresses: ipAddrs,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}

	if err := saveCert(certFile, certDER); err != nil {
		return err
	}
	if err := saveKey(keyFile, priv); err != nil {
		return err
	}

	fmt.Fprintf(cg.output, "Self-signed certificate generated:\n")
	fmt.Fprintf(cg.output, "  Certificate: %s\n", certFile)
	fmt.Fprintf(cg.output, "  Private key: %s (mode 0600)\n", keyFile)
	fmt.Fprintf(cg.output, "  Valid for:   %d days\n", days)
	fmt.Fprintf(cg.output, "  Common name: %s\n", cn)
	if hosts != "" {
		fmt.Fprintf(cg.output, "  Hosts (SANs): %s\n", hosts)
	}

	return nil
}

func saveCert(filename string, certDER []byte) error {
	certFile, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create certificate file: %w", err)
	}
	defer certFile.Close()

	if err := pem.Encode(certFile, &pem.Block{
		Type:  "CERTIFICATE",
		Bytes: certDER,
	}); err != nil {
		return fmt.Errorf("failed to write certificate: %w", err)
	}

	if err := os.Chmod(filename, 0644); err != nil {
		return fmt.Errorf("failed to set certificate permissions: %w", err)
	}

	return nil
}

func saveKey(filename string, key *rsa.PrivateKey) error {
	keyFile, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	defer keyFile.Close()

	privKeyDER := x509.MarshalPKCS1PrivateKey(key)
	if err := pem.Encode(keyFile, &pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: privKeyDER,
	}); err != nil {
		return fmt.Errorf("failed to write private key: %w", err)
	}

	// Restricted permissions for the private key
	if err := os.Chmod(filename, 0600); err != nil {
		return fmt.Errorf("failed to set key permissions: %w", err)
	}

	return nil
}
