package central

import (
	"fmt"
	"sort"
	"strings"
)

// clusterGateways maps public cluster names to their API gateway hosts.
// Private clusters are addressed with an explicit base URL instead.
var clusterGateways = map[string]string{
	"US-1":         "app1-apigw.central.arubanetworks.com",
	"US-2":         "apigw-prod2.central.arubanetworks.com",
	"US-East1":     "apigw-us-east-1.central.arubanetworks.com",
	"US-West4":     "apigw-uswest4.central.arubanetworks.com",
	"EU-1":         "eu-apigw.central.arubanetworks.com",
	"EU-Central2":  "apigw-eucentral2.central.arubanetworks.com",
	"EU-Central3":  "apigw-eucentral3.central.arubanetworks.com",
	"Canada-1":     "apigw-ca.central.arubanetworks.com",
	"China-1":      "apigw.central.arubanetworks.com.cn",
	"APAC-1":       "api-ap.central.arubanetworks.com",
	"APAC-EAST1":   "apigw-apaceast.central.arubanetworks.com",
	"APAC-SOUTH1":  "apigw-apacsouth.central.arubanetworks.com",
	"UAE-NORTH1":   "apigw-uaenorth1.central.arubanetworks.com",
}

// ClusterBaseURL resolves a cluster name to its API gateway base URL.
// Matching is case-insensitive.
func ClusterBaseURL(cluster string) (string, error) {
	name := strings.TrimSpace(cluster)
	if name == "" {
		return "", fmt.Errorf("cluster name is required")
	}
	for key, host := range clusterGateways {
		if strings.EqualFold(key, name) {
			return "https://" + host, nil
		}
	}
	return "", fmt.Errorf("unknown cluster %q; provide a base_url for private clusters", cluster)
}

// ClusterNames returns the known public cluster names, sorted.
func ClusterNames() []string {
	names := make([]string, 0, len(clusterGateways))
	for name := range clusterGateways {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
