package unit

import (
	"context"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/drepelov/pubtools-pulplib/engine/schema"
)

const ErratumContentType = "erratum"

// ErratumReference is a link from an advisory to a bug, CVE or other resource.
type ErratumReference struct {
	Href  string  `mapstructure:"href"`
	ID    *string `mapstructure:"id"`
	Title *string `mapstructure:"title"`
	Type  string  `mapstructure:"type"`
}

// ErratumModule identifies the module a package collection belongs to.
type ErratumModule struct {
	Name    string `mapstructure:"name"`
	Stream  string `mapstructure:"stream"`
	Version string `mapstructure:"version"`
	Context string `mapstructure:"context"`
	Arch    string `mapstructure:"arch"`
}

// ErratumPackage is one RPM shipped by an advisory. Checksums are nil when
// Pulp did not report them.
type ErratumPackage struct {
	Arch            string  `mapstructure:"arch"`
	Filename        string  `mapstructure:"filename"`
	Epoch           string  `mapstructure:"epoch"`
	Name            string  `mapstructure:"name"`
	Version         string  `mapstructure:"version"`
	Release         string  `mapstructure:"release"`
	Src             string  `mapstructure:"src"`
	RebootSuggested *bool   `mapstructure:"reboot_suggested"`
	MD5Sum          *string `mapstructure:"md5sum"`
	SHA1Sum         *string `mapstructure:"sha1sum"`
	SHA256Sum       *string `mapstructure:"sha256sum"`
}

// ErratumPackageCollection groups packages, optionally scoped to a module.
type ErratumPackageCollection struct {
	Name     string           `mapstructure:"name"`
	Short    string           `mapstructure:"short"`
	Module   *ErratumModule   `mapstructure:"module"`
	Packages []ErratumPackage `mapstructure:"packages"`
}

// ErratumUnit is an advisory (RHSA, RHBA, RHEA).
type ErratumUnit struct {
	UnitID                string                     `mapstructure:"_id"`
	ID                    string                     `mapstructure:"id"`
	Version               string                     `mapstructure:"version"`
	Status                string                     `mapstructure:"status"`
	Updated               string                     `mapstructure:"updated"`
	Issued                string                     `mapstructure:"issued"`
	Description           string                     `mapstructure:"description"`
	Pushcount             string                     `mapstructure:"pushcount"`
	RebootSuggested       *bool                      `mapstructure:"reboot_suggested"`
	From                  string                     `mapstructure:"from"`
	Rights                string                     `mapstructure:"rights"`
	Title                 string                     `mapstructure:"title"`
	Severity              string                     `mapstructure:"severity"`
	Release               string                     `mapstructure:"release"`
	Type                  string                     `mapstructure:"type"`
	Solution              string                     `mapstructure:"solution"`
	Summary               string                     `mapstructure:"summary"`
	ContentTypes          []string                   `mapstructure:"content_types"`
	References            []ErratumReference         `mapstructure:"references"`
	Pkglist               []ErratumPackageCollection `mapstructure:"pkglist"`
	ContainerList         []map[string]any           `mapstructure:"container_list"`
	RepositoryMemberships []string                   `mapstructure:"repository_memberships"`
}

func (u *ErratumUnit) ContentTypeID() string {
	return ErratumContentType
}

func decodeErratum(data map[string]any) (Unit, error) {
	if err := schema.Validate(context.Background(), schema.ErratumSchema, data); err != nil {
		return nil, NewDecodeError(ErratumContentType, err)
	}
	out := &ErratumUnit{}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
		TagName:          "mapstructure",
		DecodeHook:       packageSumDecodeHook,
	})
	if err != nil {
		return nil, NewDecodeError(ErratumContentType, err)
	}
	if err := decoder.Decode(data); err != nil {
		return nil, NewDecodeError(ErratumContentType, err)
	}
	return out, nil
}

// sumFields maps the algorithm names used in a package "sum" list to fields.
var sumFields = map[string]string{
	"md5":    "md5sum",
	"sha1":   "sha1sum",
	"sha256": "sha256sum",
}

// packageSumDecodeHook expands the flat ["md5", <hex>, "sha256", <hex>, ...]
// list Pulp stores under "sum" into the per-algorithm fields. Explicit
// md5sum/sha1sum/sha256sum keys win over the list.
func packageSumDecodeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(ErratumPackage{}) {
		return data, nil
	}
	pkg, ok := data.(map[string]any)
	if !ok {
		return data, nil
	}
	sums, ok := pkg["sum"].([]any)
	if !ok {
		return data, nil
	}
	out := make(map[string]any, len(pkg)+len(sumFields))
	for k, v := range pkg {
		out[k] = v
	}
	for i := 0; i+1 < len(sums); i += 2 {
		algo, ok := sums[i].(string)
		if !ok {
			continue
		}
		key, known := sumFields[algo]
		if !known {
			continue
		}
		if _, explicit := out[key]; explicit {
			continue
		}
		out[key] = sums[i+1]
	}
	delete(out, "sum")
	return out, nil
}
