package topics

// TopicEntry is a single browse topic in the YAML file.
type TopicEntry struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	Class string `yaml:"class"`
}

// TopicsConfig is the root structure for topics.yaml:
//
//	topics:
//	  - key: constitutional-law
//	    label: Constitutional law
//	    class: Q1153222
type TopicsConfig struct {
	Topics []TopicEntry `yaml:"topics"`
}
